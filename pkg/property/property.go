// Package property declares typed, versioned element fields. Descriptors are
// shared metadata; per-instance values live in a Bag.
package property

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/goliatone/go-cardgen/pkg/version"
)

// ErrInvalidValue reports a JSON value of the wrong shape for a descriptor.
var ErrInvalidValue = errors.New("property: invalid value")

// Bag stores the raw property values of a single element instance.
type Bag struct {
	values map[string]any
}

// Value returns the stored value for name.
func (b *Bag) Value(name string) (any, bool) {
	if b == nil || b.values == nil {
		return nil, false
	}
	v, ok := b.values[name]
	return v, ok
}

// SetValue stores value under name. A nil value clears the entry.
func (b *Bag) SetValue(name string, value any) {
	if b == nil {
		return
	}
	if value == nil {
		delete(b.values, name)
		return
	}
	if b.values == nil {
		b.values = make(map[string]any)
	}
	b.values[name] = value
}

// Names lists the populated property names in sorted order.
func (b *Bag) Names() []string {
	if b == nil {
		return nil
	}
	names := slices.Collect(maps.Keys(b.values))
	slices.Sort(names)
	return names
}

// Number describes an optional numeric property. Floored marks properties
// whose effective value is clamped to a host supplied minimum.
type Number struct {
	Name       string
	MinVersion version.Version
	Default    *float64
	Floored    bool
}

// Get returns the stored value, or the descriptor default when unset.
func (p Number) Get(b *Bag) *float64 {
	if v, ok := b.Value(p.Name); ok {
		if f, ok := v.(float64); ok {
			return Float(f)
		}
	}
	if p.Default != nil {
		return Float(*p.Default)
	}
	return nil
}

// Set stores value as-is. Nil clears the property.
func (p Number) Set(b *Bag, value *float64) {
	if value == nil {
		b.SetValue(p.Name, nil)
		return
	}
	b.SetValue(p.Name, *value)
}

// SupportedBy reports whether documents targeting v may use the property.
func (p Number) SupportedBy(v version.Version) bool {
	return v.AtLeast(p.MinVersion)
}

// Read extracts the property from a decoded JSON object. A missing member
// yields (nil, nil).
func (p Number) Read(node map[string]any) (*float64, error) {
	raw, ok := node[p.Name]
	if !ok || raw == nil {
		return nil, nil
	}
	f, err := toFloat(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q expects a number, got %T", ErrInvalidValue, p.Name, raw)
	}
	return Float(f), nil
}

// String describes an optional string property.
type String struct {
	Name       string
	MinVersion version.Version
	Default    string
}

// Get returns the stored value or the default.
func (p String) Get(b *Bag) string {
	if v, ok := b.Value(p.Name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return p.Default
}

// Set stores value; the empty string clears the property.
func (p String) Set(b *Bag, value string) {
	if value == "" {
		b.SetValue(p.Name, nil)
		return
	}
	b.SetValue(p.Name, value)
}

// Read extracts the property from a decoded JSON object.
func (p String) Read(node map[string]any) (string, bool, error) {
	raw, ok := node[p.Name]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: %q expects a string, got %T", ErrInvalidValue, p.Name, raw)
	}
	return s, true, nil
}

// Bool describes an optional boolean property.
type Bool struct {
	Name       string
	MinVersion version.Version
	Default    bool
}

// Get returns the stored value or the default.
func (p Bool) Get(b *Bag) bool {
	if v, ok := b.Value(p.Name); ok {
		if flag, ok := v.(bool); ok {
			return flag
		}
	}
	return p.Default
}

// Set stores value. Storing the default clears the entry so serialization can
// omit it.
func (p Bool) Set(b *Bag, value bool) {
	if value == p.Default {
		b.SetValue(p.Name, nil)
		return
	}
	b.SetValue(p.Name, value)
}

// Read extracts the property from a decoded JSON object.
func (p Bool) Read(node map[string]any) (bool, bool, error) {
	raw, ok := node[p.Name]
	if !ok || raw == nil {
		return false, false, nil
	}
	flag, ok := raw.(bool)
	if !ok {
		return false, false, fmt.Errorf("%w: %q expects a boolean, got %T", ErrInvalidValue, p.Name, raw)
	}
	return flag, true, nil
}

// Clamp applies a numeric floor. It never recurses: the returned pointer is
// either value itself or the floor, and below reports which. Nil stays nil.
func Clamp(value *float64, floor float64) (*float64, bool) {
	if value == nil {
		return nil, false
	}
	if *value < floor {
		return Float(floor), true
	}
	return value, false
}

// Float returns a pointer to a copy of f.
func Float(f float64) *float64 {
	return &f
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, ErrInvalidValue
		}
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case interface{ Float64() (float64, error) }:
		return v.Float64()
	default:
		return 0, ErrInvalidValue
	}
}
