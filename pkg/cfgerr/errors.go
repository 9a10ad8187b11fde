// SPDX-License-Identifier: MPL-2.0

package cfgerr

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArgument is returned when a value-taking flag is the last token.
	ErrMissingArgument = errors.New("missing flag value")
	// ErrBadUTF8 is returned when a flag value is not valid UTF-8 text.
	ErrBadUTF8 = errors.New("flag value is not valid UTF-8")
	// ErrFieldParse is returned when a flag value cannot be parsed into the field type.
	ErrFieldParse = errors.New("invalid flag value")
	// ErrUnknownArgument is returned for an unrecognized "--" prefixed token.
	ErrUnknownArgument = errors.New("unknown argument")
	// ErrMissingField is returned when a mandatory parameter is unset after merging.
	ErrMissingField = errors.New("missing mandatory field")
	// ErrDefaultValue is returned when a default-value expression fails to evaluate.
	ErrDefaultValue = errors.New("default value evaluation failed")
	// ErrSourceRead is returned when an existing configuration source cannot be read.
	ErrSourceRead = errors.New("cannot read configuration source")
	// ErrSourceParse is returned when a configuration source cannot be parsed.
	ErrSourceParse = errors.New("cannot parse configuration source")
	// ErrTypeMismatch is returned when a value does not match the declared field type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnknownField is returned when a layer is addressed with a name the schema lacks.
	ErrUnknownField = errors.New("unknown field")
)

type (
	// MissingArgumentError is returned when a value-taking flag has no following token.
	// Flag is the hyphenated flag name without the leading "--".
	MissingArgumentError struct {
		Flag string
	}

	// BadUTF8Error is returned when the value token of a flag is not valid UTF-8.
	BadUTF8Error struct {
		Flag string
	}

	// FieldParseError is returned when a flag value fails to parse into the
	// declared type of its parameter. Err carries the type-specific failure
	// (e.g. *strconv.NumError).
	FieldParseError struct {
		Flag  string
		Field string
		Value string
		Err   error
	}

	// UnknownArgumentError is returned for a "--" prefixed token that matches no flag.
	UnknownArgumentError struct {
		Arg string
	}

	// MissingFieldError is returned when a mandatory parameter is still unset
	// after all layers were merged.
	MissingFieldError struct {
		Name string
	}

	// DefaultValueError is returned when the default-value thunk of an unset
	// parameter fails.
	DefaultValueError struct {
		Name string
		Err  error
	}

	// SourceReadError is returned when a configuration source exists but
	// cannot be read.
	SourceReadError struct {
		Source string
		Err    error
	}

	// SourceParseError is returned when a configuration source was read but its
	// content is malformed, names an unknown key, or holds a value of the wrong type.
	// Key is empty when the failure is not tied to one key.
	SourceParseError struct {
		Source string
		Key    string
		Err    error
	}

	// TypeMismatchError is returned when a value cannot be represented as the
	// declared type of a field.
	TypeMismatchError struct {
		Name  string
		Type  string
		Value any
	}

	// UnknownFieldError is returned when a name is not declared by the schema.
	UnknownFieldError struct {
		Name string
	}
)

// Error implements the error interface for MissingArgumentError.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("flag --%s requires a value", e.Flag)
}

// Unwrap returns ErrMissingArgument for errors.Is() compatibility.
func (e *MissingArgumentError) Unwrap() error { return ErrMissingArgument }

// Error implements the error interface for BadUTF8Error.
func (e *BadUTF8Error) Error() string {
	return fmt.Sprintf("value of flag --%s is not valid UTF-8", e.Flag)
}

// Unwrap returns ErrBadUTF8 for errors.Is() compatibility.
func (e *BadUTF8Error) Unwrap() error { return ErrBadUTF8 }

// Error implements the error interface for FieldParseError.
func (e *FieldParseError) Error() string {
	return fmt.Sprintf("invalid value %q for flag --%s: %v", e.Value, e.Flag, e.Err)
}

// Unwrap returns both ErrFieldParse and the underlying parse failure.
func (e *FieldParseError) Unwrap() []error { return []error{ErrFieldParse, e.Err} }

// Error implements the error interface for UnknownArgumentError.
func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument %q", e.Arg)
}

// Unwrap returns ErrUnknownArgument for errors.Is() compatibility.
func (e *UnknownArgumentError) Unwrap() error { return ErrUnknownArgument }

// Error implements the error interface for MissingFieldError.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing mandatory field %q", e.Name)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface for DefaultValueError.
func (e *DefaultValueError) Error() string {
	return fmt.Sprintf("default value of %q: %v", e.Name, e.Err)
}

// Unwrap returns both ErrDefaultValue and the underlying failure.
func (e *DefaultValueError) Unwrap() []error { return []error{ErrDefaultValue, e.Err} }

// Error implements the error interface for SourceReadError.
func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

// Unwrap returns both ErrSourceRead and the underlying I/O failure.
func (e *SourceReadError) Unwrap() []error { return []error{ErrSourceRead, e.Err} }

// Error implements the error interface for SourceParseError.
func (e *SourceParseError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("parse %s: key %q: %v", e.Source, e.Key, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

// Unwrap returns both ErrSourceParse and the underlying decoder failure.
func (e *SourceParseError) Unwrap() []error { return []error{ErrSourceParse, e.Err} }

// Error implements the error interface for TypeMismatchError.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q expects %s, got %T", e.Name, e.Type, e.Value)
}

// Unwrap returns ErrTypeMismatch for errors.Is() compatibility.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Error implements the error interface for UnknownFieldError.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// Unwrap returns ErrUnknownField for errors.Is() compatibility.
func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// IsArgument reports whether err was produced while tokenizing command-line arguments.
func IsArgument(err error) bool {
	return errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrBadUTF8) ||
		errors.Is(err, ErrFieldParse) ||
		errors.Is(err, ErrUnknownArgument)
}

// IsValidation reports whether err was produced while validating a merged layer.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingField) || errors.Is(err, ErrDefaultValue)
}

// IsSource reports whether err was produced while reading or parsing a configuration source.
func IsSource(err error) bool {
	return errors.Is(err, ErrSourceRead) || errors.Is(err, ErrSourceParse)
}
