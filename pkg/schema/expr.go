// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// Expr returns a DefaultFunc that expands text as a shell word and parses
// the result with the parameter's type.
//
// Parameter expansion is supported ("${HOME}/.cache", "${PORT:-8080}");
// command substitution is not. The environment is read when the default is
// evaluated, not when the schema is built.
func Expr(text string) DefaultFunc {
	return func(t ValueType) (any, error) {
		expanded, err := ExpandExpr(text, os.Environ())
		if err != nil {
			return nil, err
		}
		v, err := t.Parse(expanded)
		if err != nil {
			return nil, fmt.Errorf("default %q expands to %q: %w", text, expanded, err)
		}
		return v, nil
	}
}

// ExpandExpr expands text against environ, a list of "KEY=value" pairs.
func ExpandExpr(text string, environ []string) (string, error) {
	word, err := syntax.NewParser().Document(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("parse default expression %q: %w", text, err)
	}

	cfg := &expand.Config{Env: expand.ListEnviron(environ...)}
	out, err := expand.Document(cfg, word)
	if err != nil {
		return "", fmt.Errorf("expand default expression %q: %w", text, err)
	}
	return out, nil
}
