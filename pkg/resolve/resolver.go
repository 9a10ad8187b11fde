// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/stratacfg/strata/pkg/args"
	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
	"github.com/stratacfg/strata/pkg/source"
)

type (
	// Resolver runs the load, merge and validate pipeline for one schema.
	// It holds no mutable state and may be reused.
	Resolver struct {
		schema    *schema.Schema
		sources   []source.Source
		logger    *log.Logger
		parallel  bool
		tokenizer *args.Tokenizer
	}

	// Option configures a Resolver.
	Option func(*Resolver)

	// Result is the outcome of a successful resolution.
	Result struct {
		Config *Config
		// Program is the first command-line token.
		Program string
		// Remainder is the unconsumed suffix of the command line.
		Remainder []string
	}
)

// New returns a resolver for s. Without options it reads no sources and
// logs nothing.
func New(s *schema.Schema, opts ...Option) *Resolver {
	r := &Resolver{
		schema:    s,
		logger:    log.New(io.Discard),
		tokenizer: args.New(s),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithSources appends sources in descending priority.
func WithSources(srcs ...source.Source) Option {
	return func(r *Resolver) {
		r.sources = append(r.sources, srcs...)
	}
}

// WithFiles appends one file source per path, in descending priority.
func WithFiles(paths ...string) Option {
	return WithSources(source.Files(paths...)...)
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithParallelLoad reads all sources concurrently. The fold still honors
// priority order, and the reported error is the one of the highest-priority
// failing source.
func WithParallelLoad(parallel bool) Option {
	return func(r *Resolver) {
		r.parallel = parallel
	}
}

// FromProcess resolves s against the live process arguments, reading the
// given configuration files in descending priority.
func FromProcess(ctx context.Context, s *schema.Schema, files ...string) (*Result, error) {
	return New(s, WithFiles(files...)).Resolve(ctx, os.Args)
}

// Schema returns the resolver's schema.
func (r *Resolver) Schema() *schema.Schema { return r.schema }

// Sources returns the configured sources in priority order.
func (r *Resolver) Sources() []source.Source {
	out := make([]source.Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Resolve loads every source, applies the command-line values in tokens
// (tokens[0] is the program name) and validates the result.
func (r *Resolver) Resolve(ctx context.Context, tokens []string) (*Result, error) {
	merged, err := r.LoadSources(ctx)
	if err != nil {
		return nil, err
	}

	scan, err := r.tokenizer.Merge(merged, tokens)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Applied command-line values", "fields", scan.Layer.Len(), "remainder", len(scan.Remainder))

	cfg, err := Validate(merged)
	if err != nil {
		return nil, err
	}
	return &Result{Config: cfg, Program: scan.Program, Remainder: scan.Remainder}, nil
}

// LoadSources folds every source into one layer, first-wins. Absent sources
// are skipped; the first other failure is returned.
func (r *Resolver) LoadSources(ctx context.Context) (*layer.Layer, error) {
	var layers []*layer.Layer
	var err error
	if r.parallel {
		layers, err = r.loadParallel(ctx)
	} else {
		layers, err = r.loadSequential(ctx)
	}
	if err != nil {
		return nil, err
	}
	return layer.Fold(r.schema, layers...), nil
}

func (r *Resolver) loadSequential(ctx context.Context) ([]*layer.Layer, error) {
	layers := make([]*layer.Layer, 0, len(r.sources))
	for _, src := range r.sources {
		l, err := src.Load(ctx, r.schema)
		skip, err := r.observe(src, l, err)
		if err != nil {
			return nil, err
		}
		if !skip {
			layers = append(layers, l)
		}
	}
	return layers, nil
}

func (r *Resolver) loadParallel(ctx context.Context) ([]*layer.Layer, error) {
	layers := make([]*layer.Layer, len(r.sources))
	errs := make([]error, len(r.sources))

	// A failure cancels only the sources below it, so the reported error
	// is the same one a sequential load would return.
	ctxs := make([]context.Context, len(r.sources))
	cancels := make([]context.CancelFunc, len(r.sources))
	for i := range r.sources {
		ctxs[i], cancels[i] = context.WithCancel(ctx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	var g errgroup.Group
	for i, src := range r.sources {
		g.Go(func() error {
			layers[i], errs[i] = src.Load(ctxs[i], r.schema)
			if errs[i] == nil || source.IsAbsent(errs[i]) {
				return nil
			}
			for _, cancel := range cancels[i+1:] {
				cancel()
			}
			return errs[i]
		})
	}
	_ = g.Wait() // per-source errors are reported in priority order below

	out := make([]*layer.Layer, 0, len(layers))
	for i, src := range r.sources {
		skip, err := r.observe(src, layers[i], errs[i])
		if err != nil {
			return nil, err
		}
		if !skip {
			out = append(out, layers[i])
		}
	}
	return out, nil
}

func (r *Resolver) observe(src source.Source, l *layer.Layer, err error) (skip bool, _ error) {
	switch {
	case source.IsAbsent(err):
		r.logger.Debug("Skipped absent configuration source", "source", src.Name())
		return true, nil
	case err != nil:
		r.logger.Debug("Failed to load configuration source", "source", src.Name(), "error", err)
		return false, err
	default:
		r.logger.Debug("Loaded configuration source", "source", src.Name(), "fields", l.Len())
		return false, nil
	}
}
