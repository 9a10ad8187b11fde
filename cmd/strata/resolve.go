// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stratacfg/strata/internal/config"
	"github.com/stratacfg/strata/pkg/resolve"
	"github.com/stratacfg/strata/pkg/source"
)

// resolveFlags holds the flags shared by resolve and tokenize.
type resolveFlags struct {
	schemaPath string
	program    string
	format     string
	explain    bool

	// resolve only
	files     []string
	envPrefix string
	parallel  bool
}

func (f *resolveFlags) bindCommon(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.schemaPath, "schema", "", "schema file (.cue or .toml; default is ./strata.schema.cue or ./strata.schema.toml)")
	cmd.Flags().StringVar(&f.program, "program", "", "program name placed before the arguments (default is the schema file name)")
	cmd.Flags().StringVar(&f.format, "format", "", "output format: text, toml, yaml or json (default from settings)")
	cmd.Flags().BoolVar(&f.explain, "explain", false, "show which source supplied each value")
}

// outputFormat returns --format when given, else the settings value.
func (f *resolveFlags) outputFormat(cmd *cobra.Command, app *App) (config.OutputFormat, error) {
	format := app.settings.Output.Format
	if cmd.Flags().Changed("format") {
		format = config.OutputFormat(f.format)
	}
	if ok, errs := format.IsValid(); !ok {
		return "", errs[0]
	}
	return format, nil
}

func newResolveCommand(app *App) *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [flags] -- [ARGS...]",
		Short: "Resolve a configuration from files, environment and arguments",
		Long: `Resolve a configuration against a schema.

Configuration files given with -c are read in order; the first file that
sets a field wins. Environment variables (with --env-prefix) rank below
every file. Arguments after -- are scanned as the program's command line
and always override file values.`,
		Example: `  strata resolve --schema app.schema.cue -c local.toml -c base.yaml -- --port 8080
  strata resolve --explain --format json -- --debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, &flags, args)
		},
	}

	flags.bindCommon(cmd)
	cmd.Flags().StringArrayVarP(&flags.files, "config-file", "c", nil, "configuration file, highest priority first (repeatable)")
	cmd.Flags().StringVar(&flags.envPrefix, "env-prefix", "", "read PREFIX_<FIELD> environment variables below all files (default from settings)")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", false, "read configuration files concurrently (default from settings)")

	return cmd
}

func runResolve(cmd *cobra.Command, app *App, flags *resolveFlags, args []string) error {
	format, err := flags.outputFormat(cmd, app)
	if err != nil {
		return err
	}

	s, program, err := app.loadSchema(flags.schemaPath)
	if err != nil {
		return err
	}
	if flags.program != "" {
		program = flags.program
	}

	parallel := app.settings.Resolve.Parallel
	if cmd.Flags().Changed("parallel") {
		parallel = flags.parallel
	}
	prefix := app.settings.Resolve.EnvPrefix
	if cmd.Flags().Changed("env-prefix") {
		prefix = config.EnvPrefix(flags.envPrefix)
		if ok, errs := prefix.IsValid(); !ok {
			return errs[0]
		}
	}

	sources := make([]source.Source, 0, len(flags.files)+1)
	for _, path := range flags.files {
		sources = append(sources, source.NewFile(app.resolvePath(path)))
	}
	if prefix != "" {
		sources = append(sources, source.NewEnv(string(prefix)))
	}

	r := resolve.New(s,
		resolve.WithSources(sources...),
		resolve.WithLogger(app.logger),
		resolve.WithParallelLoad(parallel),
	)

	res, err := r.Resolve(cmd.Context(), append([]string{program}, args...))
	if err != nil {
		return err
	}
	app.logger.Debug("Resolved configuration", "fields", res.Config.Len(), "remainder", len(res.Remainder))

	cfg := res.Config
	entries := make([]entry, 0, cfg.Len())
	for _, name := range s.Names() {
		v, ok := cfg.Lookup(name)
		if !ok {
			continue
		}
		entries = append(entries, entry{name: name, value: v, origin: cfg.Origin(name)})
	}

	return newReport(res.Program, entries, res.Remainder, flags.explain).render(app.stdout, format)
}
