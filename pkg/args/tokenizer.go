// SPDX-License-Identifier: MPL-2.0

package args

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

const (
	// Label is the layer label given to command-line values.
	Label = "args"

	// Terminator ends flag scanning.
	Terminator = "--"
)

const (
	scanning state = iota
	stopped
)

type (
	state uint8

	// Tokenizer scans token lists against a fixed schema.
	// It is immutable and safe for concurrent use.
	Tokenizer struct {
		schema *schema.Schema
		flags  map[string]flagSpec
	}

	// Result is the outcome of a successful scan.
	Result struct {
		// Program is the first token, or "" for an empty token list.
		Program string
		// Layer holds only the values set on the command line.
		Layer *layer.Layer
		// Remainder is the unconsumed suffix of the token list. It is never
		// nil and never aliases the input slice.
		Remainder []string
	}

	flagSpec struct {
		field    string
		flagName string
		param    bool
		typ      schema.ValueType
		value    bool
	}
)

// New precomputes the flag table of s.
func New(s *schema.Schema) *Tokenizer {
	t := &Tokenizer{schema: s, flags: make(map[string]flagSpec, s.Len())}
	for _, p := range s.Params() {
		if !p.Argument {
			continue
		}
		t.flags[p.Flag()] = flagSpec{field: p.Name, flagName: p.FlagName(), param: true, typ: p.Type}
	}
	for _, sw := range s.Switches() {
		t.flags[sw.Flag()] = flagSpec{field: sw.Name, flagName: strings.TrimPrefix(sw.Flag(), "--"), value: sw.FlagValue()}
	}
	return t
}

// Flags returns the recognized flag tokens, sorted.
func (t *Tokenizer) Flags() []string {
	return slices.Sorted(maps.Keys(t.flags))
}

// Tokenize scans tokens into a fresh layer labeled Label. Any error aborts
// the whole scan.
func (t *Tokenizer) Tokenize(tokens []string) (*Result, error) {
	res := &Result{Layer: layer.New(t.schema, Label)}
	if len(tokens) == 0 {
		res.Remainder = []string{}
		return res, nil
	}
	res.Program = tokens[0]

	st := scanning
	i := 1
	for st == scanning && i < len(tokens) {
		tok := tokens[i]

		if tok == Terminator {
			i++
			st = stopped
			continue
		}

		spec, known := t.flags[tok]
		switch {
		case known && spec.param:
			if i+1 >= len(tokens) {
				return nil, &cfgerr.MissingArgumentError{Flag: spec.flagName}
			}
			v, err := spec.parse(tokens[i+1])
			if err != nil {
				return nil, err
			}
			if err := res.Layer.Overwrite(spec.field, v); err != nil {
				return nil, err
			}
			i += 2
		case known:
			if err := res.Layer.Overwrite(spec.field, spec.value); err != nil {
				return nil, err
			}
			i++
		case strings.HasPrefix(tok, "--"):
			return nil, &cfgerr.UnknownArgumentError{Arg: tok}
		default:
			st = stopped
		}
	}

	res.Remainder = append([]string{}, tokens[i:]...)
	return res, nil
}

// Merge scans tokens and overwrites l with the command-line values, which
// always win over what l already holds. l is untouched when scanning fails.
// Like (*layer.Layer).Apply, it panics if l belongs to another schema.
func (t *Tokenizer) Merge(l *layer.Layer, tokens []string) (*Result, error) {
	res, err := t.Tokenize(tokens)
	if err != nil {
		return nil, err
	}
	l.Apply(res.Layer)
	return res, nil
}

func (f flagSpec) parse(token string) (any, error) {
	if !utf8.ValidString(token) {
		return nil, &cfgerr.BadUTF8Error{Flag: f.flagName}
	}
	v, err := f.typ.Parse(token)
	if err != nil {
		return nil, &cfgerr.FieldParseError{Flag: f.flagName, Field: f.field, Value: token, Err: err}
	}
	return v, nil
}
