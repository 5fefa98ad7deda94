// Package registry maps type names to factories gated by a minimum schema
// version. It is generic over the produced value so element packages can keep
// their own interface types.
package registry

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-cardgen/pkg/version"
)

// Factory produces a fresh, unparsed instance of a registered type.
type Factory[T any] func() T

// Registration describes a single registered type.
type Registration[T any] struct {
	TypeName   string
	Factory    Factory[T]
	MinVersion version.Version
}

// Registry stores registrations keyed by type name. Registering a name twice
// replaces the earlier entry. The zero value is not usable; call New.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]Registration[T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]Registration[T]),
	}
}

// Register upserts the factory for typeName. Blank names and nil factories are
// ignored.
func (r *Registry[T]) Register(typeName string, factory Factory[T], minVersion version.Version) {
	if r == nil || factory == nil {
		return
	}
	name := strings.TrimSpace(typeName)
	if name == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[name] = Registration[T]{
		TypeName:   name,
		Factory:    factory,
		MinVersion: minVersion,
	}
}

// Resolve returns the factory for typeName when active satisfies the
// registration's minimum version. Otherwise it behaves as if the name was never
// registered.
func (r *Registry[T]) Resolve(typeName string, active version.Version) (Factory[T], bool) {
	reg, ok := r.Registration(typeName)
	if !ok {
		return nil, false
	}
	if !active.AtLeast(reg.MinVersion) {
		return nil, false
	}
	return reg.Factory, true
}

// Registration returns the raw entry for typeName regardless of version.
func (r *Registry[T]) Registration(typeName string) (Registration[T], bool) {
	if r == nil {
		return Registration[T]{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.items[strings.TrimSpace(typeName)]
	return reg, ok
}

// Unregister removes typeName and reports whether it was present.
func (r *Registry[T]) Unregister(typeName string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimSpace(typeName)
	if _, ok := r.items[name]; !ok {
		return false
	}
	delete(r.items, name)
	return true
}

// Names returns the registered type names in sorted order.
func (r *Registry[T]) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := slices.Collect(maps.Keys(r.items))
	slices.Sort(names)
	return names
}

// Len reports the number of registrations.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Clone returns an independent copy so callers can extend a shared registry
// without mutating it.
func (r *Registry[T]) Clone() *Registry[T] {
	clone := New[T]()
	if r == nil {
		return clone
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	maps.Copy(clone.items, r.items)
	return clone
}
