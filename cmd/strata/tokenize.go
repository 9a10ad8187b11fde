// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stratacfg/strata/pkg/args"
)

func newTokenizeCommand(app *App) *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "tokenize [flags] -- [ARGS...]",
		Short: "Scan a command line against a schema without resolving",
		Long: `Scan a command line against a schema and print the values it sets.

No files are read, no defaults are applied and mandatory fields are not
checked. Use this to see how strata splits a command line into flags and
the remainder.`,
		Example: `  strata tokenize --schema app.schema.cue -- --port 8080 --debug serve -v`,
		RunE: func(cmd *cobra.Command, argv []string) error {
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

			res, err := args.New(s).Tokenize(append([]string{program}, argv...))
			if err != nil {
				return err
			}

			var entries []entry
			res.Layer.Each(func(name string, value any, origin string) bool {
				entries = append(entries, entry{name: name, value: value, origin: origin})
				return true
			})
			return newReport(res.Program, entries, res.Remainder, flags.explain).render(app.stdout, format)
		},
	}

	flags.bindCommon(cmd)
	return cmd
}
