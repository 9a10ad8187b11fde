// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/stratacfg/strata/internal/config"
)

type (
	// report is the structured form of a resolve or tokenize run.
	report struct {
		Program   string            `json:"program" toml:"program" yaml:"program"`
		Config    map[string]any    `json:"config" toml:"config" yaml:"config"`
		Remainder []string          `json:"remainder" toml:"remainder" yaml:"remainder"`
		Origins   map[string]string `json:"origins,omitempty" toml:"origins,omitempty" yaml:"origins,omitempty"`

		// names keeps schema order for text output.
		names []string
	}

	// entry is one field in schema order.
	entry struct {
		name   string
		value  any
		origin string
	}
)

func newReport(program string, entries []entry, remainder []string, explain bool) *report {
	r := &report{
		Program:   program,
		Config:    make(map[string]any, len(entries)),
		Remainder: remainder,
	}
	if r.Remainder == nil {
		r.Remainder = []string{}
	}
	if explain {
		r.Origins = make(map[string]string, len(entries))
	}
	for _, e := range entries {
		r.names = append(r.names, e.name)
		r.Config[e.name] = portable(e.value)
		if explain {
			r.Origins[e.name] = e.origin
		}
	}
	return r
}

// portable converts values that encoders would otherwise print as integers.
func portable(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}

// render writes r to w in the given format.
func (r *report) render(w io.Writer, format config.OutputFormat) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputTOML:
		return toml.NewEncoder(w).Encode(r)
	case config.OutputText:
		return r.renderText(w)
	default:
		return &config.InvalidOutputFormatError{Value: format}
	}
}

func (r *report) renderText(w io.Writer) error {
	width := 0
	for _, name := range r.names {
		width = max(width, len(name))
	}

	var b strings.Builder
	if r.Program != "" {
		fmt.Fprintf(&b, "%s %s\n", SubtitleStyle.Render("#"), TitleStyle.Render(r.Program))
	}
	for _, name := range r.names {
		pad := strings.Repeat(" ", width-len(name))
		fmt.Fprintf(&b, "%s%s = %s", KeyStyle.Render(name), pad, formatValue(r.Config[name]))
		if origin, ok := r.Origins[name]; ok {
			fmt.Fprintf(&b, "  %s", SubtitleStyle.Render("# "+origin))
		}
		b.WriteByte('\n')
	}
	if len(r.Remainder) > 0 {
		fmt.Fprintf(&b, "%s %s\n", SubtitleStyle.Render("-- "), strings.Join(r.Remainder, " "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
