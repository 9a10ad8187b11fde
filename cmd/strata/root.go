// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/stratacfg/strata/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the strata command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Layered configuration resolver",
		Long: TitleStyle.Render("strata") + SubtitleStyle.Render(" - Layered configuration resolver") + `

strata resolves a typed configuration from a schema, a stack of
configuration files, environment variables and command-line flags.
Files are merged first-wins; flags always override them.

` + SubtitleStyle.Render("Examples:") + `
  strata resolve --schema app.schema.cue -c local.toml -c base.yaml -- --port 8080
  strata tokenize --schema app.schema.cue -- --debug --name svc extra
  strata schema check app.schema.cue
  strata schema doc app.schema.cue
  strata config show`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app.loadSettings(cmd.Context())
			return nil
		},
	}
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "settings file (default is $HOME/.config/strata/config.cue)")

	rootCmd.AddCommand(
		newResolveCommand(app),
		newTokenizeCommand(app),
		newSchemaCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// Execute runs the CLI against the process arguments and exits.
// This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	)
	os.Exit(exitCode(err))
}

// handleError prints err to w. Resolution failures get their actionable
// form; in verbose mode the matching issue guide follows.
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	ae := issue.FromError(err)
	if ae == nil || (ae.Issue == 0 && !ae.HasSuggestions()) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+ae.Format(a.verbose))
	guide := ae.Guide()
	if !a.verbose || guide == nil {
		return
	}
	rendered, renderErr := guide.Render(a.settings.UI.ColorScheme.GlamourStyle())
	if renderErr != nil {
		a.logger.Debug("Failed to render issue guide", "issue", ae.Issue, "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}
