// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

var (
	// String is the "string" value type, represented as string.
	String ValueType = stringType{}
	// Int is the "int" value type, represented as int.
	Int ValueType = intType{}
	// Uint is the "uint" value type, represented as uint.
	Uint ValueType = uintType{}
	// Float is the "float" value type, represented as float64.
	Float ValueType = floatType{}
	// Bool is the "bool" value type, represented as bool.
	Bool ValueType = boolType{}
	// Duration is the "duration" value type, represented as time.Duration.
	Duration ValueType = durationType{}

	builtinTypes = map[string]ValueType{
		"string":   String,
		"int":      Int,
		"uint":     Uint,
		"float":    Float,
		"bool":     Bool,
		"duration": Duration,
	}

	errNotRepresentable = errors.New("value not representable")
)

// ValueType is a scalar configuration type.
//
// Parse converts a single command-line token into the type's Go value.
// Coerce converts a value produced by a file decoder (TOML, YAML, CUE, HCL)
// into the same Go value, rejecting anything of a different kind.
type ValueType interface {
	Name() string
	Parse(token string) (any, error)
	Coerce(v any) (any, error)
}

type (
	stringType   struct{}
	intType      struct{}
	uintType     struct{}
	floatType    struct{}
	boolType     struct{}
	durationType struct{}
)

// LookupType returns the built-in value type with the given name.
func LookupType(name string) (ValueType, bool) {
	t, ok := builtinTypes[name]
	return t, ok
}

// TypeNames returns the names of all built-in value types.
func TypeNames() []string {
	return []string{"string", "int", "uint", "float", "bool", "duration"}
}

func (stringType) Name() string { return "string" }

func (stringType) Parse(token string) (any, error) { return token, nil }

func (stringType) Coerce(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, errNotRepresentable
}

func (intType) Name() string { return "int" }

func (intType) Parse(token string) (any, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (intType) Coerce(v any) (any, error) {
	n, ok := asInt64(v)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return nil, errNotRepresentable
	}
	return int(n), nil
}

func (uintType) Name() string { return "uint" }

func (uintType) Parse(token string) (any, error) {
	n, err := strconv.ParseUint(token, 10, strconv.IntSize)
	if err != nil {
		return nil, err
	}
	return uint(n), nil
}

func (uintType) Coerce(v any) (any, error) {
	switch n := v.(type) {
	case uint:
		return n, nil
	case uint64:
		if n > math.MaxUint {
			return nil, errNotRepresentable
		}
		return uint(n), nil
	case uint32:
		return uint(n), nil
	case uint16:
		return uint(n), nil
	case uint8:
		return uint(n), nil
	}
	n, ok := asInt64(v)
	if !ok || n < 0 {
		return nil, errNotRepresentable
	}
	return uint(n), nil
}

func (floatType) Name() string { return "float" }

func (floatType) Parse(token string) (any, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (floatType) Coerce(v any) (any, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	case *big.Float:
		out, _ := f.Float64()
		return out, nil
	}
	if n, ok := asInt64(v); ok {
		return float64(n), nil
	}
	return nil, errNotRepresentable
}

func (boolType) Name() string { return "bool" }

func (boolType) Parse(token string) (any, error) {
	b, err := strconv.ParseBool(token)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (boolType) Coerce(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return nil, errNotRepresentable
}

func (durationType) Name() string { return "duration" }

func (durationType) Parse(token string) (any, error) {
	d, err := time.ParseDuration(token)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (durationType) Coerce(v any) (any, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errNotRepresentable, err)
		}
		return parsed, nil
	}
	return nil, errNotRepresentable
}

// asInt64 widens every Go integer kind a decoder may produce. Floats are
// rejected even when integral so that "3.0" never silently becomes an int.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case *big.Int:
		if !n.IsInt64() {
			return 0, false
		}
		return n.Int64(), true
	default:
		return 0, false
	}
}
