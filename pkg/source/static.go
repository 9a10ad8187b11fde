// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"maps"

	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

// Static is an in-memory source, typically used for values a host program
// computes itself.
type Static struct {
	name   string
	values map[string]any
}

// NewStatic returns a source that always yields values. The map is copied.
func NewStatic(name string, values map[string]any) *Static {
	return &Static{name: name, values: maps.Clone(values)}
}

// Name returns the label given to NewStatic.
func (st *Static) Name() string { return st.name }

// Load validates the values against s, with the same rules as files.
func (st *Static) Load(ctx context.Context, s *schema.Schema) (*layer.Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buildLayer(s, st.name, st.values)
}
