// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

// DefaultOrigin is the provenance of values that come from a parameter's
// default or a switch's kind.
const DefaultOrigin = "default"

// Validate turns a merged layer into a total configuration.
//
// The first unset mandatory parameter, in declaration order, fails with
// *cfgerr.MissingFieldError before any default is evaluated. Unset optional
// parameters stay absent. Unset default-value parameters call their
// DefaultFunc exactly once; a failing or ill-typed default is reported as
// *cfgerr.DefaultValueError. Unset switches take their kind's default.
func Validate(l *layer.Layer) (*Config, error) {
	s := l.Schema()
	params := s.Params()

	for _, p := range params {
		if p.Optionality == schema.Mandatory && !l.IsSet(p.Name) {
			return nil, &cfgerr.MissingFieldError{Name: p.Name}
		}
	}

	cfg := newConfig(s)
	for _, p := range params {
		if v, ok := l.Get(p.Name); ok {
			cfg.set(p.Name, v, l.Origin(p.Name))
			continue
		}
		switch p.Optionality {
		case schema.Optional:
			// absent
		case schema.DefaultValue:
			v, err := evalDefault(p)
			if err != nil {
				return nil, err
			}
			cfg.set(p.Name, v, DefaultOrigin)
		}
	}

	for _, sw := range s.Switches() {
		if v, ok := l.Get(sw.Name); ok {
			cfg.set(sw.Name, v, l.Origin(sw.Name))
			continue
		}
		cfg.set(sw.Name, sw.Default(), DefaultOrigin)
	}
	return cfg, nil
}

func evalDefault(p schema.ParamSpec) (any, error) {
	raw, err := p.Default(p.Type)
	if err != nil {
		return nil, &cfgerr.DefaultValueError{Name: p.Name, Err: err}
	}
	v, err := p.Type.Coerce(raw)
	if err != nil {
		return nil, &cfgerr.DefaultValueError{
			Name: p.Name,
			Err:  &cfgerr.TypeMismatchError{Name: p.Name, Type: p.Type.Name(), Value: raw},
		}
	}
	return v, nil
}
