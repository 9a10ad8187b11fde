// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stratacfg/strata/internal/config"
	"github.com/stratacfg/strata/internal/issue"
)

// newConfigCommand creates the `strata config` command tree.
// Subcommands that read settings use the App's Config provider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage strata settings",
		Long: `Manage the settings of the strata binary.

Settings are stored in:
  - Linux: ~/.config/strata/config.cue
  - macOS: ~/Library/Application Support/strata/config.cue
  - Windows: %APPDATA%\strata\config.cue

A strata.cue file in the working directory is used when the user file
does not exist. STRATA_<SECTION>_<KEY> environment variables override
both, e.g. STRATA_OUTPUT_FORMAT=json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective settings as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return err
			}
			_, err = io.WriteString(app.stdout, config.GenerateCUE(cfg))
			return err
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
	if err != nil {
		if a := issue.Get(issue.ConfigLoadFailedId); a != nil {
			if rendered, renderErr := a.Render(app.settings.UI.ColorScheme.GlamourStyle()); renderErr == nil {
				fmt.Fprint(app.stderr, rendered)
			}
		}
		return err
	}

	w := app.stdout
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Settings"))
	fmt.Fprintln(w)

	path, _ := app.Config.Path(cmd.Context(), app.loadOptions())
	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Settings file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render("Settings file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(string(cfg.Output.Format)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(string(cfg.Log.Level)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", KeyStyle.Render("resolve"))
	fmt.Fprintf(w, "  parallel: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Resolve.Parallel)))
	if cfg.Resolve.EnvPrefix == "" {
		fmt.Fprintf(w, "  env_prefix: %s\n", SubtitleStyle.Render("(none)"))
	} else {
		fmt.Fprintf(w, "  env_prefix: %s\n", valueStyle.Render(string(cfg.Resolve.EnvPrefix)))
	}

	return nil
}

func showConfigPath(cmd *cobra.Command, app *App) error {
	target, err := config.DefaultConfigPath(app.configDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Settings file: %s\n", target)

	active, err := app.Config.Path(cmd.Context(), app.loadOptions())
	if err != nil {
		return err
	}
	if active == "" {
		fmt.Fprintf(app.stdout, "Active file: %s\n", SubtitleStyle.Render("(none, using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "Active file: %s\n", active)
	}
	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig(app.configDir)
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Settings already exist at %s\n", WarningStyle.Render("•"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default settings at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
