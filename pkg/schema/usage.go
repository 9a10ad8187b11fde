// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"strings"
)

// Markdown renders the command-line and file surface of the schema as a
// Markdown document suitable for a terminal renderer or a README.
func (s *Schema) Markdown(program string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", program)
	fmt.Fprintf(&sb, "```\n%s [FLAGS] [--] [ARGS...]\n```\n\n", program)

	sb.WriteString("## Parameters\n\n")
	if len(s.params) == 0 {
		sb.WriteString("_none_\n\n")
	} else {
		sb.WriteString("| Flag | Type | Resolution | Description |\n")
		sb.WriteString("|------|------|------------|-------------|\n")
		for _, p := range s.params {
			flag := "_(file only)_"
			if p.Argument {
				flag = fmt.Sprintf("`%s <%s>`", p.Flag(), p.Type.Name())
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", flag, p.Type.Name(), resolutionDoc(p), escapeCell(p.Doc))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Switches\n\n")
	if len(s.switches) == 0 {
		sb.WriteString("_none_\n\n")
	} else {
		sb.WriteString("| Flag | Default | Description |\n")
		sb.WriteString("|------|---------|-------------|\n")
		for _, sw := range s.switches {
			fmt.Fprintf(&sb, "| `%s` | %t | %s |\n", sw.Flag(), sw.Default(), escapeCell(sw.Doc))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Configuration file keys\n\n")
	for _, name := range s.names {
		t, _ := s.TypeOf(name)
		fmt.Fprintf(&sb, "- `%s` (%s)\n", name, t.Name())
	}
	sb.WriteString("\n`--` ends flag parsing; everything after it is passed through unchanged.\n")

	return sb.String()
}

func resolutionDoc(p ParamSpec) string {
	switch p.Optionality {
	case DefaultValue:
		if p.DefaultDoc != "" {
			return fmt.Sprintf("default `%s`", p.DefaultDoc)
		}
		return "computed default"
	case Optional:
		return "optional"
	default:
		return "**required**"
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
