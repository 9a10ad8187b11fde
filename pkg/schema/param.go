// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"fmt"
	"strings"
)

const (
	// Mandatory parameters must be set by some layer; validation fails otherwise.
	Mandatory OptionalityKind = iota
	// Optional parameters resolve to an explicit "absent" state when unset.
	Optional
	// DefaultValue parameters evaluate their Default thunk when unset.
	DefaultValue
)

type (
	// OptionalityKind decides what validation does with an unset parameter.
	OptionalityKind uint8

	// DefaultFunc produces the fallback value of a DefaultValue parameter.
	// It is invoked lazily, only when the parameter is unset at validation
	// time, and receives the parameter's declared type.
	DefaultFunc func(t ValueType) (any, error)

	// ParamSpec declares one typed, value-taking parameter.
	ParamSpec struct {
		// Name is the identifier used as file key and, hyphenated, as flag name.
		Name string
		// Type parses flag tokens and coerces file values.
		Type ValueType
		// Optionality decides how an unset value is resolved.
		Optionality OptionalityKind
		// Default is required for DefaultValue parameters and forbidden otherwise.
		Default DefaultFunc
		// DefaultDoc is a human-readable rendering of Default for usage output.
		DefaultDoc string
		// Argument exposes the parameter as a "--name value" command-line flag.
		Argument bool
		// Doc is a one-line description for usage output.
		Doc string
	}
)

// String returns the lower-case name of the optionality kind.
func (k OptionalityKind) String() string {
	switch k {
	case Mandatory:
		return "mandatory"
	case Optional:
		return "optional"
	case DefaultValue:
		return "default"
	default:
		return fmt.Sprintf("optionality(%d)", uint8(k))
	}
}

// FlagName returns the flag spelling of the parameter without the leading
// dashes: underscores become hyphens.
func (p ParamSpec) FlagName() string {
	return FlagName(p.Name)
}

// Flag returns the full command-line token that sets the parameter.
func (p ParamSpec) Flag() string {
	return "--" + p.FlagName()
}

// Const returns a DefaultFunc that always yields v.
func Const(v any) DefaultFunc {
	return func(ValueType) (any, error) {
		return v, nil
	}
}

// FlagName hyphenates an identifier for use on the command line.
func FlagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

func (p ParamSpec) validate() []error {
	var errs []error
	if !isIdentifier(p.Name) {
		errs = append(errs, &InvalidNameError{Name: p.Name})
	}
	if p.Type == nil {
		errs = append(errs, &InvalidParamError{Name: p.Name, Reason: "missing value type"})
	}
	switch p.Optionality {
	case Mandatory, Optional:
		if p.Default != nil {
			errs = append(errs, &InvalidParamError{Name: p.Name, Reason: fmt.Sprintf("%s parameter cannot have a default", p.Optionality)})
		}
	case DefaultValue:
		if p.Default == nil {
			errs = append(errs, &InvalidParamError{Name: p.Name, Reason: "default parameter requires a Default function"})
		}
	default:
		errs = append(errs, &InvalidParamError{Name: p.Name, Reason: fmt.Sprintf("unknown optionality %s", p.Optionality)})
	}
	return errs
}
