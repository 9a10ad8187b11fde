// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"regexp"
	"slices"
	"strings"
)

const (
	// FieldParam marks a name that refers to a ParamSpec.
	FieldParam FieldKind = iota + 1
	// FieldSwitch marks a name that refers to a SwitchSpec.
	FieldSwitch
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type (
	// FieldKind distinguishes parameters from switches in the shared namespace.
	FieldKind uint8

	// Schema is an immutable, validated description of a configuration surface.
	Schema struct {
		params   []ParamSpec
		switches []SwitchSpec
		index    map[string]fieldRef
		names    []string
	}

	fieldRef struct {
		kind FieldKind
		pos  int
	}
)

// New validates params and switches and returns the Schema they describe.
// Every problem is reported at once in an *InvalidSchemaError.
func New(params []ParamSpec, switches []SwitchSpec) (*Schema, error) {
	s := &Schema{
		params:   slices.Clone(params),
		switches: slices.Clone(switches),
		index:    make(map[string]fieldRef, len(params)+len(switches)),
	}

	var errs []error
	flags := make(map[string]string)
	claim := func(flag, name string) {
		if first, taken := flags[flag]; taken {
			errs = append(errs, &FlagCollisionError{Flag: flag, First: first, Second: name})
			return
		}
		flags[flag] = name
	}
	folded := make(map[string]string)
	register := func(name string, ref fieldRef) {
		if _, dup := s.index[name]; dup {
			errs = append(errs, &DuplicateNameError{Name: name})
			return
		}
		if other, dup := folded[strings.ToLower(name)]; dup {
			errs = append(errs, &DuplicateNameError{Name: name, Other: other})
			return
		}
		folded[strings.ToLower(name)] = name
		s.index[name] = ref
		s.names = append(s.names, name)
	}

	for i, p := range s.params {
		errs = append(errs, p.validate()...)
		register(p.Name, fieldRef{kind: FieldParam, pos: i})
		if p.Argument {
			claim(p.Flag(), p.Name)
		}
	}
	for i, sw := range s.switches {
		errs = append(errs, sw.validate()...)
		register(sw.Name, fieldRef{kind: FieldSwitch, pos: i})
		claim(sw.Flag(), sw.Name)
	}

	if len(errs) > 0 {
		return nil, &InvalidSchemaError{FieldErrors: errs}
	}
	return s, nil
}

// MustNew is like New but panics on an invalid schema. It is meant for
// schemas declared as package-level variables.
func MustNew(params []ParamSpec, switches []SwitchSpec) *Schema {
	s, err := New(params, switches)
	if err != nil {
		panic(err)
	}
	return s
}

// Params returns the parameters in declaration order.
func (s *Schema) Params() []ParamSpec { return slices.Clone(s.params) }

// Switches returns the switches in declaration order.
func (s *Schema) Switches() []SwitchSpec { return slices.Clone(s.switches) }

// Names returns every field name: parameters first, then switches, each in
// declaration order.
func (s *Schema) Names() []string { return slices.Clone(s.names) }

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.names) }

// Kind reports whether name is a parameter or a switch. It returns 0 for
// unknown names.
func (s *Schema) Kind(name string) FieldKind {
	return s.index[name].kind
}

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Param returns the parameter called name.
func (s *Schema) Param(name string) (ParamSpec, bool) {
	ref, ok := s.index[name]
	if !ok || ref.kind != FieldParam {
		return ParamSpec{}, false
	}
	return s.params[ref.pos], true
}

// Switch returns the switch called name.
func (s *Schema) Switch(name string) (SwitchSpec, bool) {
	ref, ok := s.index[name]
	if !ok || ref.kind != FieldSwitch {
		return SwitchSpec{}, false
	}
	return s.switches[ref.pos], true
}

// Index returns the position of name in Names.
func (s *Schema) Index(name string) (int, bool) {
	ref, ok := s.index[name]
	if !ok {
		return 0, false
	}
	if ref.kind == FieldSwitch {
		return len(s.params) + ref.pos, true
	}
	return ref.pos, true
}

// TypeOf returns the value type of a field. Switches are always Bool.
func (s *Schema) TypeOf(name string) (ValueType, bool) {
	ref, ok := s.index[name]
	if !ok {
		return nil, false
	}
	if ref.kind == FieldSwitch {
		return Bool, true
	}
	return s.params[ref.pos].Type, true
}

func isIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
