// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"strings"

	"github.com/spf13/viper"

	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

// Env reads one environment variable per schema field. The variable for
// field "cache_dir" with prefix "APP" is APP_CACHE_DIR. Empty variables are
// treated as unset. Values are parsed like command-line tokens.
type Env struct {
	prefix string
}

// NewEnv returns an environment source. An empty prefix maps field
// "cache_dir" to CACHE_DIR.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix}
}

// Name returns "env" or "env:PREFIX".
func (e *Env) Name() string {
	if e.prefix == "" {
		return "env"
	}
	return "env:" + e.prefix
}

// Variable returns the environment variable consulted for field name.
func (e *Env) Variable(name string) string {
	if e.prefix == "" {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(e.prefix + "_" + name)
}

// Load reads the bound variables. Unparseable values are reported as
// *cfgerr.SourceParseError keyed by variable name.
func (e *Env) Load(ctx context.Context, s *schema.Schema) (*layer.Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(e.prefix)
	for _, name := range s.Names() {
		if err := v.BindEnv(name); err != nil {
			return nil, &cfgerr.SourceReadError{Source: e.Name(), Err: err}
		}
	}

	l := layer.New(s, e.Name())
	for _, name := range s.Names() {
		if !v.IsSet(name) {
			continue
		}
		t, _ := s.TypeOf(name)
		raw := v.GetString(name)
		parsed, err := t.Parse(raw)
		if err != nil {
			return nil, &cfgerr.SourceParseError{Source: e.Name(), Key: e.Variable(name), Err: err}
		}
		if err := l.Overwrite(name, parsed); err != nil {
			return nil, &cfgerr.SourceParseError{Source: e.Name(), Key: e.Variable(name), Err: err}
		}
	}
	return l, nil
}
