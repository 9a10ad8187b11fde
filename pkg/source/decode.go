// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"gopkg.in/yaml.v3"

	"github.com/stratacfg/strata/pkg/cueutil"
)

const (
	// FormatTOML selects the TOML decoder.
	FormatTOML Format = "toml"
	// FormatYAML selects the YAML decoder.
	FormatYAML Format = "yaml"
	// FormatCUE selects the CUE decoder. Every value must be concrete.
	FormatCUE Format = "cue"
	// FormatHCL selects the HCL decoder. Only top-level attributes are allowed.
	FormatHCL Format = "hcl"
)

var (
	// ErrUnknownFormat is returned when no decoder matches a file.
	ErrUnknownFormat = errors.New("unknown configuration format")

	decoders = map[Format]decodeFunc{
		FormatTOML: decodeTOML,
		FormatYAML: decodeYAML,
		FormatCUE:  decodeCUE,
		FormatHCL:  decodeHCL,
	}

	extensions = map[string]Format{
		".toml": FormatTOML,
		".yaml": FormatYAML,
		".yml":  FormatYAML,
		".cue":  FormatCUE,
		".hcl":  FormatHCL,
	}
)

type (
	// Format names a configuration file syntax.
	Format string

	decodeFunc func(data []byte, filename string) (map[string]any, error)
)

// Formats returns every supported format name, sorted.
func Formats() []string {
	out := make([]string, 0, len(decoders))
	for f := range decoders {
		out = append(out, string(f))
	}
	slices.Sort(out)
	return out
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(name))
	if _, ok := decoders[f]; !ok {
		return "", fmt.Errorf("%w %q (valid: %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// FormatOf infers the format of path from its extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: extension %q of %s", ErrUnknownFormat, ext, path)
}

// Decode parses data in format f into a flat table.
func Decode(f Format, data []byte, filename string) (map[string]any, error) {
	dec, ok := decoders[f]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
	return dec(data, filename)
}

func decodeTOML(data []byte, _ string) (map[string]any, error) {
	table := map[string]any{}
	if err := toml.Unmarshal(data, &table); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return nil, err
	}
	return table, nil
}

func decodeYAML(data []byte, _ string) (map[string]any, error) {
	table := map[string]any{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func decodeCUE(data []byte, filename string) (map[string]any, error) {
	return cueutil.DecodeConcrete[map[string]any](data, cueutil.WithFilename(filename))
}

func decodeHCL(data []byte, filename string) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	table := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyToNative(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		table[name] = native
	}
	return table, nil
}

// ctyToNative converts a scalar cty value. Whole numbers become int64 so
// they can populate integer fields.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}

	switch ty := v.Type(); ty {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, err
		}
		return b, nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
