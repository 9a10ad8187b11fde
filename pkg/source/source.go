// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"errors"
	"io/fs"
	"maps"
	"slices"

	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

// Source produces one partial layer.
type Source interface {
	// Name identifies the source in errors, logs and layer provenance.
	Name() string
	// Load reads the source and returns the values it sets.
	Load(ctx context.Context, s *schema.Schema) (*layer.Layer, error)
}

// IsAbsent reports whether err means the source simply does not exist.
func IsAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Files returns one File source per path, in the given order.
func Files(paths ...string) []Source {
	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		out = append(out, NewFile(p))
	}
	return out
}

// buildLayer turns a decoded flat table into a layer labeled name. Keys are
// checked in sorted order so the reported key is deterministic. Null values
// leave their field unset.
func buildLayer(s *schema.Schema, name string, table map[string]any) (*layer.Layer, error) {
	l := layer.New(s, name)
	for _, key := range slices.Sorted(maps.Keys(table)) {
		value := table[key]
		if !s.Has(key) {
			return nil, &cfgerr.SourceParseError{Source: name, Key: key, Err: &cfgerr.UnknownFieldError{Name: key}}
		}
		if value == nil {
			continue
		}
		if err := l.Overwrite(key, value); err != nil {
			return nil, &cfgerr.SourceParseError{Source: name, Key: key, Err: err}
		}
	}
	return l, nil
}
