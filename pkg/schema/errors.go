// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSchema is the sentinel error wrapped by InvalidSchemaError.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrInvalidName is returned when a parameter or switch name is not an identifier.
	ErrInvalidName = errors.New("invalid name")
	// ErrDuplicateName is returned when two fields share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrFlagCollision is returned when two fields derive the same flag token.
	ErrFlagCollision = errors.New("flag collision")
	// ErrInvalidParam is returned when a ParamSpec is inconsistent.
	ErrInvalidParam = errors.New("invalid parameter")
	// ErrInvalidSwitch is returned when a SwitchSpec is inconsistent.
	ErrInvalidSwitch = errors.New("invalid switch")
	// ErrUnknownType is returned when a schema file names an unknown value type.
	ErrUnknownType = errors.New("unknown value type")
	// ErrUnsupportedFormat is returned when a schema file has an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported schema format")
)

type (
	// InvalidSchemaError collects every problem found while building a Schema.
	// It wraps ErrInvalidSchema for errors.Is() compatibility.
	InvalidSchemaError struct {
		FieldErrors []error
	}

	// InvalidNameError is returned when a name is not a valid identifier.
	InvalidNameError struct {
		Name string
	}

	// DuplicateNameError is returned when a name is declared twice, or when
	// two names differ only by case. Environment variables and viper keys
	// fold case, so such names would share one key.
	DuplicateNameError struct {
		Name string
		// Other is the earlier name Name folds onto; empty for exact repeats.
		Other string
	}

	// FlagCollisionError is returned when two fields map to the same flag token,
	// e.g. parameter "no_color" and inverted switch "color" both claim "--no-color".
	FlagCollisionError struct {
		Flag   string
		First  string
		Second string
	}

	// InvalidParamError is returned when a ParamSpec is internally inconsistent.
	InvalidParamError struct {
		Name   string
		Reason string
	}

	// InvalidSwitchError is returned when a SwitchSpec is internally inconsistent.
	InvalidSwitchError struct {
		Name   string
		Reason string
	}

	// UnknownTypeError is returned when a schema file names an unknown value type.
	UnknownTypeError struct {
		Param string
		Type  string
	}
)

// Error implements the error interface for InvalidSchemaError.
func (e *InvalidSchemaError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid schema: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidSchema and every field error for errors.Is() compatibility.
func (e *InvalidSchemaError) Unwrap() []error {
	return append([]error{ErrInvalidSchema}, e.FieldErrors...)
}

// Error implements the error interface for InvalidNameError.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: must match [A-Za-z_][A-Za-z0-9_]*", e.Name)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

// Error implements the error interface for DuplicateNameError.
func (e *DuplicateNameError) Error() string {
	if e.Other != "" {
		return fmt.Sprintf("name %q differs from %q only by case", e.Name, e.Other)
	}
	return fmt.Sprintf("name %q is declared more than once", e.Name)
}

// Unwrap returns ErrDuplicateName for errors.Is() compatibility.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// Error implements the error interface for FlagCollisionError.
func (e *FlagCollisionError) Error() string {
	return fmt.Sprintf("flag %s is claimed by both %q and %q", e.Flag, e.First, e.Second)
}

// Unwrap returns ErrFlagCollision for errors.Is() compatibility.
func (e *FlagCollisionError) Unwrap() error { return ErrFlagCollision }

// Error implements the error interface for InvalidParamError.
func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidParam for errors.Is() compatibility.
func (e *InvalidParamError) Unwrap() error { return ErrInvalidParam }

// Error implements the error interface for InvalidSwitchError.
func (e *InvalidSwitchError) Error() string {
	return fmt.Sprintf("switch %q: %s", e.Name, e.Reason)
}

// Unwrap returns ErrInvalidSwitch for errors.Is() compatibility.
func (e *InvalidSwitchError) Unwrap() error { return ErrInvalidSwitch }

// Error implements the error interface for UnknownTypeError.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("parameter %q: unknown type %q (valid: %s)", e.Param, e.Type, strings.Join(TypeNames(), ", "))
}

// Unwrap returns ErrUnknownType for errors.Is() compatibility.
func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }
