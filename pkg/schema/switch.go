// SPDX-License-Identifier: MPL-2.0

package schema

import "fmt"

const (
	// Normal switches default to false and are turned on by "--name".
	Normal SwitchKind = iota
	// Inverted switches default to true and are turned off by "--no-name".
	Inverted
)

type (
	// SwitchKind selects the default and the flag spelling of a switch.
	SwitchKind uint8

	// SwitchSpec declares one boolean setting.
	SwitchSpec struct {
		Name string
		Kind SwitchKind
		Doc  string
	}
)

// String returns the lower-case name of the switch kind.
func (k SwitchKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Inverted:
		return "inverted"
	default:
		return fmt.Sprintf("switch(%d)", uint8(k))
	}
}

// Default returns the value of an unset switch.
func (s SwitchSpec) Default() bool {
	return s.Kind == Inverted
}

// FlagValue returns the value stored when the switch's flag is present.
func (s SwitchSpec) FlagValue() bool {
	return !s.Default()
}

// Flag returns the full command-line token that toggles the switch. Unlike
// parameter flags, the name is used exactly as declared.
func (s SwitchSpec) Flag() string {
	if s.Kind == Inverted {
		return "--no-" + s.Name
	}
	return "--" + s.Name
}

func (s SwitchSpec) validate() []error {
	var errs []error
	if !isIdentifier(s.Name) {
		errs = append(errs, &InvalidNameError{Name: s.Name})
	}
	if s.Kind != Normal && s.Kind != Inverted {
		errs = append(errs, &InvalidSwitchError{Name: s.Name, Reason: fmt.Sprintf("unknown kind %s", s.Kind)})
	}
	return errs
}
