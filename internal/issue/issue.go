// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	SchemaNotFoundId Id = iota + 1
	SchemaInvalidId
	UnknownArgumentId
	MissingArgumentId
	InvalidFlagValueId
	MissingFieldId
	DefaultValueFailedId
	SourceReadFailedId
	SourceParseFailedId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the guide with the named glamour style ("dark", "light",
// "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	schemaNotFoundIssue = &Issue{
		id: SchemaNotFoundId,
		mdMsg: `
# Schema file not found!

strata needs a schema describing the parameters and switches to resolve.

## Things you can try:
- Pass the schema explicitly:
~~~
$ strata resolve --schema ./app.schema.cue -- --help
~~~

- Create a minimal schema:
~~~cue
params: [
  {name: "port", type: "int", default: "8080"},
]
switches: [
  {name: "verbose"},
]
~~~`,
	}

	schemaInvalidIssue = &Issue{
		id: SchemaInvalidId,
		mdMsg: `
# Invalid schema!

The schema file could not be turned into a configuration surface.

## Common issues:
- A name that is not an identifier (use letters, digits and underscores)
- The same name declared as a parameter and as a switch
- Two fields spelling the same flag, e.g. parameter ` + "`no_color`" + ` and inverted switch ` + "`color`" + `
- An unknown type (valid: string, int, uint, float, bool, duration)
- ` + "`optional: true`" + ` together with a ` + "`default`" + `

## Things you can try:
~~~
$ strata schema check ./app.schema.cue
~~~`,
	}

	unknownArgumentIssue = &Issue{
		id: UnknownArgumentId,
		mdMsg: `
# Unknown argument!

A token starting with ` + "`--`" + ` did not match any parameter or switch.

## Things you can try:
- Check the spelling; underscores in parameter names become hyphens on the command line,
  while switches are spelled exactly as declared
- Inverted switches are only spelled ` + "`--no-<name>`" + `
- Pass positional arguments that start with dashes after ` + "`--`" + `:
~~~
$ app --verbose -- --not-a-flag
~~~

- List the accepted flags:
~~~
$ strata schema doc ./app.schema.cue
~~~`,
	}

	missingArgumentIssue = &Issue{
		id: MissingArgumentId,
		mdMsg: `
# Missing flag value!

A parameter flag was the last token on the command line. Every parameter
flag takes exactly one value, given as the next token:

~~~
$ app --count 3
~~~`,
	}

	invalidFlagValueIssue = &Issue{
		id: InvalidFlagValueId,
		mdMsg: `
# Invalid flag value!

The value given to a parameter flag could not be parsed with the
parameter's type.

## Accepted spellings:
- **int**, **uint**: decimal digits, e.g. ` + "`42`" + `
- **float**: e.g. ` + "`0.5`" + `, ` + "`1e3`" + `
- **bool**: ` + "`true`" + `, ` + "`false`" + `, ` + "`1`" + `, ` + "`0`" + `
- **duration**: e.g. ` + "`30s`" + `, ` + "`1m30s`" + `, ` + "`2h`" + `

Values must also be valid UTF-8.`,
	}

	missingFieldIssue = &Issue{
		id: MissingFieldId,
		mdMsg: `
# Missing mandatory field!

A mandatory parameter was not set by any configuration file, environment
variable or command-line flag.

## Things you can try:
- Set it on the command line:
~~~
$ app --<name> <value>
~~~

- Or add it to one of the configuration files:
~~~toml
name = "value"
~~~

- See where every value comes from:
~~~
$ strata resolve --schema ./app.schema.cue --explain -c ./app.toml -- app
~~~`,
	}

	defaultValueFailedIssue = &Issue{
		id: DefaultValueFailedId,
		mdMsg: `
# Default value could not be computed!

A parameter was unset and its default expression failed to evaluate or
produced a value of the wrong type.

## Things you can try:
- Check the environment variables the default refers to, e.g. ` + "`${HOME}`" + `
- Use a fallback: ` + "`${CACHE_DIR:-/tmp/cache}`" + `
- Set the parameter explicitly so the default is never evaluated`,
	}

	sourceReadFailedIssue = &Issue{
		id: SourceReadFailedId,
		mdMsg: `
# Configuration source could not be read!

The file exists but reading it failed. Missing files are skipped; every
other read failure stops resolution.

## Things you can try:
- Check file permissions
- Make sure the path names a file, not a directory`,
	}

	sourceParseFailedIssue = &Issue{
		id: SourceParseFailedId,
		mdMsg: `
# Configuration source is invalid!

Configuration files hold one flat table whose keys are schema names.

## Common issues:
- A key that the schema does not declare
- A nested table or a list
- A value of the wrong type, e.g. ` + "`port = \"80\"`" + ` for an int

## Supported formats:
~~~toml
# app.toml
port = 8080
verbose = true
~~~

~~~yaml
# app.yaml
port: 8080
verbose: true
~~~

~~~hcl
# app.hcl
port    = 8080
verbose = true
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load strata settings!

Could not load the strata settings file.

## Settings file locations:
- Linux: ~/.config/strata/config.cue
- macOS: ~/Library/Application Support/strata/config.cue
- Windows: %APPDATA%\strata\config.cue

## Things you can try:
- Create a default settings file:
~~~
$ strata config init
~~~

- Remove the file to use defaults

## Example settings:
~~~cue
ui: {
  color_scheme: "auto"
  verbose: false
}
output: format: "text"
~~~`,
	}

	issues = map[Id]*Issue{
		schemaNotFoundIssue.Id():     schemaNotFoundIssue,
		schemaInvalidIssue.Id():      schemaInvalidIssue,
		unknownArgumentIssue.Id():    unknownArgumentIssue,
		missingArgumentIssue.Id():    missingArgumentIssue,
		invalidFlagValueIssue.Id():   invalidFlagValueIssue,
		missingFieldIssue.Id():       missingFieldIssue,
		defaultValueFailedIssue.Id(): defaultValueFailedIssue,
		sourceReadFailedIssue.Id():   sourceReadFailedIssue,
		sourceParseFailedIssue.Id():  sourceParseFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
