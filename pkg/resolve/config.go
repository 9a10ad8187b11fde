// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"
	"time"

	"github.com/stratacfg/strata/pkg/layer"
	"github.com/stratacfg/strata/pkg/schema"
)

type (
	// Config is a resolved configuration: one value per switch and per
	// parameter, except optional parameters that no source set. It is
	// immutable once returned by Validate.
	Config struct {
		schema  *schema.Schema
		fields  []field
		present int
	}

	field struct {
		ok     bool
		value  any
		origin string
	}
)

func newConfig(s *schema.Schema) *Config {
	return &Config{schema: s, fields: make([]field, s.Len())}
}

func (c *Config) set(name string, value any, origin string) {
	i, _ := c.schema.Index(name)
	if !c.fields[i].ok {
		c.present++
	}
	c.fields[i] = field{ok: true, value: value, origin: origin}
}

// Schema returns the schema the configuration was validated against.
func (c *Config) Schema() *schema.Schema { return c.schema }

// Len returns the number of present fields.
func (c *Config) Len() int { return c.present }

// Lookup returns the value of name. It reports false for unknown names and
// for optional parameters that were never set.
func (c *Config) Lookup(name string) (any, bool) {
	i, ok := c.schema.Index(name)
	if !ok || !c.fields[i].ok {
		return nil, false
	}
	return c.fields[i].value, true
}

// Origin returns the label of the source that supplied name, DefaultOrigin
// for defaults, or "" when absent.
func (c *Config) Origin(name string) string {
	i, ok := c.schema.Index(name)
	if !ok {
		return ""
	}
	return c.fields[i].origin
}

// Values returns every present field.
func (c *Config) Values() map[string]any {
	out := make(map[string]any, c.present)
	for i, name := range c.schema.Names() {
		if c.fields[i].ok {
			out[name] = c.fields[i].value
		}
	}
	return out
}

// ToLayer re-expresses the configuration as a layer in which every present
// field is set, keeping provenance. Validating it yields an equal Config.
func (c *Config) ToLayer(label string) (*layer.Layer, error) {
	out := layer.New(c.schema, label)
	for i, name := range c.schema.Names() {
		f := c.fields[i]
		if !f.ok {
			continue
		}
		if err := out.OverwriteFrom(name, f.value, f.origin); err != nil {
			return nil, fmt.Errorf("config field %q: %w", name, err)
		}
	}
	return out, nil
}

// Get returns the value of name as T. It reports false when the field is
// absent or holds a different type.
func Get[T any](c *Config, name string) (T, bool) {
	v, ok := c.Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// String returns a string field, or "" when absent.
func (c *Config) String(name string) string {
	v, _ := Get[string](c, name)
	return v
}

// Int returns an int field, or 0 when absent.
func (c *Config) Int(name string) int {
	v, _ := Get[int](c, name)
	return v
}

// Uint returns a uint field, or 0 when absent.
func (c *Config) Uint(name string) uint {
	v, _ := Get[uint](c, name)
	return v
}

// Float returns a float field, or 0 when absent.
func (c *Config) Float(name string) float64 {
	v, _ := Get[float64](c, name)
	return v
}

// Bool returns a switch or bool parameter, or false when absent.
func (c *Config) Bool(name string) bool {
	v, _ := Get[bool](c, name)
	return v
}

// Duration returns a duration field, or 0 when absent.
func (c *Config) Duration(name string) time.Duration {
	v, _ := Get[time.Duration](c, name)
	return v
}
