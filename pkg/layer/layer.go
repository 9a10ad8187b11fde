// SPDX-License-Identifier: MPL-2.0

package layer

import (
	"github.com/stratacfg/strata/pkg/cfgerr"
	"github.com/stratacfg/strata/pkg/schema"
)

// FoldLabel is the label of the layer returned by Fold.
const FoldLabel = "merged"

type (
	// Layer is a partial configuration bound to a schema. The zero value is
	// not usable; create layers with New.
	//
	// A Layer is not safe for concurrent mutation.
	Layer struct {
		schema  *schema.Schema
		label   string
		entries []entry
	}

	entry struct {
		set    bool
		value  any
		origin string
	}
)

// New returns an empty layer for s. label names the source of the values
// that will be written through Overwrite (a file path, "env", "args").
func New(s *schema.Schema, label string) *Layer {
	return &Layer{
		schema:  s,
		label:   label,
		entries: make([]entry, s.Len()),
	}
}

// Fold merges layers left to right with SetIfAbsent into a fresh layer, so
// the first layer that sets a field wins. Nil layers are skipped.
//
// It panics if a layer is bound to a schema other than s.
func Fold(s *schema.Schema, layers ...*Layer) *Layer {
	out := New(s, FoldLabel)
	for _, l := range layers {
		out.SetIfAbsent(l)
	}
	return out
}

// Schema returns the schema the layer is bound to.
func (l *Layer) Schema() *schema.Schema { return l.schema }

// Label returns the source label of the layer.
func (l *Layer) Label() string { return l.label }

// Overwrite unconditionally sets the field called name. value is coerced to
// the field's declared type; an unknown name or an unrepresentable value is
// an error and leaves the layer unchanged.
func (l *Layer) Overwrite(name string, value any) error {
	return l.OverwriteFrom(name, value, l.label)
}

// OverwriteFrom is Overwrite with an explicit origin instead of the layer's
// own label.
func (l *Layer) OverwriteFrom(name string, value any, origin string) error {
	i, v, err := l.coerce(name, value)
	if err != nil {
		return err
	}
	l.entries[i] = entry{set: true, value: v, origin: origin}
	return nil
}

// SetIfAbsent copies every field that is set in other and unset in l,
// together with its origin. A nil other is a no-op.
//
// It panics if other is bound to a different schema.
func (l *Layer) SetIfAbsent(other *Layer) {
	if other == nil {
		return
	}
	l.mustShareSchema(other)
	for i, e := range other.entries {
		if e.set && !l.entries[i].set {
			l.entries[i] = e
		}
	}
}

// Apply overwrites l with every field that is set in other, keeping other's
// origins. Fields unset in other are left alone. A nil other is a no-op.
//
// It panics if other is bound to a different schema.
func (l *Layer) Apply(other *Layer) {
	if other == nil {
		return
	}
	l.mustShareSchema(other)
	for i, e := range other.entries {
		if e.set {
			l.entries[i] = e
		}
	}
}

// Get returns the value of name and whether it is set.
func (l *Layer) Get(name string) (any, bool) {
	i, ok := l.schema.Index(name)
	if !ok || !l.entries[i].set {
		return nil, false
	}
	return l.entries[i].value, true
}

// IsSet reports whether name holds a value.
func (l *Layer) IsSet(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Origin returns the label of the layer that set name, or "" when unset.
func (l *Layer) Origin(name string) string {
	i, ok := l.schema.Index(name)
	if !ok {
		return ""
	}
	return l.entries[i].origin
}

// Len returns the number of set fields.
func (l *Layer) Len() int {
	n := 0
	for _, e := range l.entries {
		if e.set {
			n++
		}
	}
	return n
}

// Each calls fn for every set field in schema order until fn returns false.
func (l *Layer) Each(fn func(name string, value any, origin string) bool) {
	names := l.schema.Names()
	for i, e := range l.entries {
		if !e.set {
			continue
		}
		if !fn(names[i], e.value, e.origin) {
			return
		}
	}
}

// Values returns the set fields as a map.
func (l *Layer) Values() map[string]any {
	out := make(map[string]any, l.Len())
	l.Each(func(name string, value any, _ string) bool {
		out[name] = value
		return true
	})
	return out
}

// Clone returns an independent copy of l.
func (l *Layer) Clone() *Layer {
	out := &Layer{
		schema:  l.schema,
		label:   l.label,
		entries: make([]entry, len(l.entries)),
	}
	copy(out.entries, l.entries)
	return out
}

func (l *Layer) coerce(name string, value any) (int, any, error) {
	i, ok := l.schema.Index(name)
	if !ok {
		return 0, nil, &cfgerr.UnknownFieldError{Name: name}
	}
	t, _ := l.schema.TypeOf(name)
	v, err := t.Coerce(value)
	if err != nil {
		return 0, nil, &cfgerr.TypeMismatchError{Name: name, Type: t.Name(), Value: value}
	}
	return i, v, nil
}

// mustShareSchema guards the combining operators. Layers of one schema share
// its index, so mixing schemas is a caller bug, not a runtime condition.
func (l *Layer) mustShareSchema(other *Layer) {
	if other.schema != l.schema {
		panic("layer: cannot combine layers of different schemas")
	}
}
