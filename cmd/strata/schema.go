// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/stratacfg/strata/pkg/schema"
)

func newSchemaCommand(app *App) *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect schema files",
		Long: `Inspect schema files.

A schema declares parameters (typed values, possibly read from the
command line) and switches (boolean flags). Schemas are written in CUE
(.cue) or TOML (.toml).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	schemaCmd.AddCommand(&cobra.Command{
		Use:   "check FILE...",
		Short: "Validate schema files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkSchemas(app, args)
		},
	})

	var (
		program string
		raw     bool
	)
	docCmd := &cobra.Command{
		Use:   "doc FILE",
		Short: "Render the command-line reference of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, name, err := app.loadSchema(app.resolvePath(args[0]))
			if err != nil {
				return err
			}
			if program != "" {
				name = program
			}
			return renderSchemaDoc(app, s, name, raw)
		},
	}
	docCmd.Flags().StringVar(&program, "program", "", "program name used in the reference (default is the file name)")
	docCmd.Flags().BoolVar(&raw, "raw", false, "print Markdown instead of rendering it")
	schemaCmd.AddCommand(docCmd)

	return schemaCmd
}

// checkSchemas loads every file and reports each one. It fails when any
// file is invalid, after all files have been checked.
func checkSchemas(app *App, paths []string) error {
	failed := 0
	for _, path := range paths {
		s, err := schema.Load(app.resolvePath(path))
		if err != nil {
			failed++
			fmt.Fprintf(app.stdout, "%s %s\n", ErrorStyle.Render("✗"), path)
			fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintf(app.stdout, "%s %s %s\n", SuccessStyle.Render("✓"), path,
			SubtitleStyle.Render(fmt.Sprintf("(%d parameters, %d switches)", len(s.Params()), len(s.Switches()))))
	}

	if failed > 0 {
		app.logger.Debug("Schema check failed", "invalid", failed, "total", len(paths))
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

func renderSchemaDoc(app *App, s *schema.Schema, program string, raw bool) error {
	md := s.Markdown(program)
	if raw {
		_, err := io.WriteString(app.stdout, md)
		return err
	}

	rendered, err := glamour.Render(md, app.settings.UI.ColorScheme.GlamourStyle())
	if err != nil {
		return fmt.Errorf("failed to render schema reference: %w", err)
	}
	_, err = io.WriteString(app.stdout, rendered)
	return err
}
