// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"os"

	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/cueutil"
	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

type (
	// File is a configuration file source.
	File struct {
		path        string
		format      Format
		maxFileSize int64
	}

	// FileOption configures a File.
	FileOption func(*File)
)

// NewFile returns a source reading path. Unless WithFormat is given, the
// format is inferred from the extension when the file is loaded.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path, maxFileSize: cueutil.DefaultMaxFileSize}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithFormat overrides extension-based format detection.
func WithFormat(format Format) FileOption {
	return func(f *File) {
		f.format = format
	}
}

// WithMaxFileSize sets the largest accepted file.
// Default is cueutil.DefaultMaxFileSize.
func WithMaxFileSize(size int64) FileOption {
	return func(f *File) {
		f.maxFileSize = size
	}
}

// Name returns the file path.
func (f *File) Name() string { return f.path }

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Load reads and decodes the file. A missing file yields a
// *cfgerr.SourceReadError matching fs.ErrNotExist.
func (f *File) Load(ctx context.Context, s *schema.Schema) (*layer.Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &cfgerr.SourceReadError{Source: f.path, Err: err}
	}

	format := f.format
	if format == "" {
		if format, err = FormatOf(f.path); err != nil {
			return nil, &cfgerr.SourceParseError{Source: f.path, Err: err}
		}
	}

	if err := cueutil.CheckFileSize(data, f.maxFileSize, f.path); err != nil {
		return nil, &cfgerr.SourceParseError{Source: f.path, Err: err}
	}

	table, err := Decode(format, data, f.path)
	if err != nil {
		return nil, &cfgerr.SourceParseError{Source: f.path, Err: err}
	}
	return buildLayer(s, f.path, table)
}
