// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/stratacfg/strata/internal/config"
	"github.com/stratacfg/strata/internal/issue"
	"github.com/stratacfg/strata/pkg/schema"
)

// defaultSchemaFiles are looked up in the working directory when --schema is not given.
var defaultSchemaFiles = []string{"strata.schema.cue", "strata.schema.toml"}

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reads
	// settings, writers and the logger from it.
	App struct {
		Config   config.Provider
		settings *config.Config
		logger   *log.Logger
		stdout   io.Writer
		stderr   io.Writer
		verbose  bool
		// cfgFile is the --config flag value.
		cfgFile   string
		configDir string
		workDir   string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		// ConfigDir overrides the settings directory lookup.
		ConfigDir string
		// WorkDir is where strata.cue and default schema files are looked
		// up; "" means the current directory.
		WorkDir string
	}
)

// NewApp creates an App with defaults for every unset dependency.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:    deps.Config,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		configDir: deps.ConfigDir,
		workDir:   deps.WorkDir,
		settings:  config.DefaultConfig(),
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{Prefix: config.AppName})
	app.logger.SetLevel(app.settings.Log.Level.Level())
	return app
}

// Settings returns the settings in effect for this invocation.
func (a *App) Settings() *config.Config {
	return a.settings
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.cfgFile,
		ConfigDirPath:  a.configDir,
		WorkDir:        a.workDir,
	}
}

// loadSettings reads the settings file and configures the logger. A broken
// settings file is reported as a warning and the defaults stay in effect.
func (a *App) loadSettings(ctx context.Context) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	} else {
		a.settings = cfg
	}

	if !a.verbose {
		a.verbose = a.settings.UI.Verbose
	}
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(a.settings.Log.Level.Level())
	}
}

// loadSchema reads the schema at path, or the first default schema file
// found in the working directory when path is empty. It also returns a
// program name derived from the file name ("app.schema.cue" gives "app").
func (a *App) loadSchema(path string) (*schema.Schema, string, error) {
	if path == "" {
		for _, name := range defaultSchemaFiles {
			candidate := a.resolvePath(name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return nil, "", issue.NewErrorContext().
			WithOperation("load schema").
			WithIssue(issue.SchemaNotFoundId).
			WithSuggestion("Pass the schema with --schema FILE").
			WithSuggestion("Or create " + defaultSchemaFiles[0] + " in the working directory").
			Wrap(fmt.Errorf("no schema file found: %w", fs.ErrNotExist)).
			BuildError()
	}

	s, err := schema.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load schema").
				WithResource(path).
				WithIssue(issue.SchemaNotFoundId).
				WithSuggestion("Verify the schema path is correct").
				Wrap(err).
				BuildError()
		}
		return nil, "", issue.NewErrorContext().
			WithOperation("load schema").
			WithIssue(issue.SchemaInvalidId).
			WithSuggestion("Run 'strata schema check " + path + "' for the full list of problems").
			Wrap(err).
			BuildError()
	}

	a.logger.Debug("Loaded schema", "path", path, "fields", s.Len())
	return s, programName(path), nil
}

func (a *App) resolvePath(name string) string {
	if a.workDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.workDir, name)
}

// programName strips every extension from the base name of path.
func programName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
