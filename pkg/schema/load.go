// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stratacfg/strata/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

//go:embed schema_schema.cue
var schemaDefinition []byte

type (
	// fileSchema is the on-disk shape shared by CUE and TOML schema files.
	fileSchema struct {
		Params   []fileParam  `json:"params"   toml:"params"`
		Switches []fileSwitch `json:"switches" toml:"switches"`
	}

	fileParam struct {
		Name     string  `json:"name"               toml:"name"`
		Type     string  `json:"type"               toml:"type"`
		Optional bool    `json:"optional,omitempty" toml:"optional"`
		Default  *string `json:"default,omitempty"  toml:"default"`
		Argument *bool   `json:"argument,omitempty" toml:"argument"`
		Doc      string  `json:"doc,omitempty"      toml:"doc"`
	}

	fileSwitch struct {
		Name string `json:"name"           toml:"name"`
		Kind string `json:"kind,omitempty" toml:"kind"`
		Doc  string `json:"doc,omitempty"  toml:"doc"`
	}
)

// Load reads a schema file. The format is chosen by extension: ".cue" files
// are validated against the embedded #Schema definition, ".toml" files are
// decoded strictly (unknown keys are errors).
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data, strings.TrimPrefix(filepath.Ext(path), "."), path)
}

// Parse decodes schema file content in the given format ("cue" or "toml").
// filename is used in error messages only.
func Parse(data []byte, format, filename string) (*Schema, error) {
	var fs *fileSchema
	switch format {
	case "cue":
		result, err := cueutil.ParseAndDecode[fileSchema](schemaDefinition, data, "#Schema", cueutil.WithFilename(filename))
		if err != nil {
			return nil, err
		}
		fs = result.Value
	case "toml":
		if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
			return nil, err
		}
		fs = &fileSchema{}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(fs); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w %q (valid: cue, toml)", filename, ErrUnsupportedFormat, format)
	}

	s, err := fs.build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

func (fs *fileSchema) build() (*Schema, error) {
	var errs []error
	params := make([]ParamSpec, 0, len(fs.Params))
	for _, fp := range fs.Params {
		p, err := fp.spec()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		params = append(params, p)
	}

	switches := make([]SwitchSpec, 0, len(fs.Switches))
	for _, fsw := range fs.Switches {
		sw := SwitchSpec{Name: fsw.Name, Doc: fsw.Doc}
		switch fsw.Kind {
		case "", "normal":
			sw.Kind = Normal
		case "inverted":
			sw.Kind = Inverted
		default:
			errs = append(errs, &InvalidSwitchError{Name: fsw.Name, Reason: fmt.Sprintf("unknown kind %q (valid: normal, inverted)", fsw.Kind)})
			continue
		}
		switches = append(switches, sw)
	}

	if len(errs) > 0 {
		return nil, &InvalidSchemaError{FieldErrors: errs}
	}
	return New(params, switches)
}

func (fp fileParam) spec() (ParamSpec, error) {
	t, ok := LookupType(fp.Type)
	if !ok {
		return ParamSpec{}, &UnknownTypeError{Param: fp.Name, Type: fp.Type}
	}

	p := ParamSpec{
		Name:     fp.Name,
		Type:     t,
		Argument: fp.Argument == nil || *fp.Argument,
		Doc:      fp.Doc,
	}
	switch {
	case fp.Default != nil && fp.Optional:
		return ParamSpec{}, &InvalidParamError{Name: fp.Name, Reason: "optional and default are mutually exclusive"}
	case fp.Default != nil:
		p.Optionality = DefaultValue
		p.Default = Expr(*fp.Default)
		p.DefaultDoc = *fp.Default
	case fp.Optional:
		p.Optionality = Optional
	default:
		p.Optionality = Mandatory
	}
	return p, nil
}
