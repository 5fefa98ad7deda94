// Package components tracks the page assets each card element type needs when
// rendered to HTML.
package components

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Script describes a JavaScript dependency emitted once per document.
type Script struct {
	Src    string
	Inline string
	Defer  bool
	Attrs  map[string]string
}

// Descriptor bundles the stylesheets and scripts an element type depends on.
type Descriptor struct {
	Name        string
	Stylesheets []string
	Scripts     []Script
}

// Registry tracks descriptors keyed by element type name. Type names are
// case-sensitive, matching the card document "type" member.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with an element type. Existing entries are
// replaced.
func (r *Registry) Register(typeName string, descriptor Descriptor) error {
	if typeName = normalize(typeName); typeName == "" {
		return fmt.Errorf("components: element type name is required")
	}
	if len(descriptor.Stylesheets) == 0 && len(descriptor.Scripts) == 0 {
		return fmt.Errorf("components: descriptor for %q declares no assets", typeName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = typeName
	r.components[typeName] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default registry
// setup.
func (r *Registry) MustRegister(typeName string, descriptor Descriptor) {
	if err := r.Register(typeName, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by element type.
func (r *Registry) Descriptor(typeName string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(typeName)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns a sorted slice of registered element types.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := slices.Collect(maps.Keys(r.components))
	slices.Sort(names)
	return names
}

// Assets resolves the deduplicated assets for the given element types, in the
// order the types are listed.
func (r *Registry) Assets(typeNames []string) (stylesheets []string, scripts []Script) {
	if len(typeNames) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})

	for _, name := range typeNames {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seenStyles[href]; exists {
				continue
			}
			seenStyles[href] = struct{}{}
			stylesheets = append(stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			key := scriptKey(script)
			if _, exists := seenScripts[key]; exists {
				continue
			}
			seenScripts[key] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	clone := Descriptor{
		Name:        src.Name,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     make([]Script, len(src.Scripts)),
	}
	for idx, script := range src.Scripts {
		clone.Scripts[idx] = Script{
			Src:    script.Src,
			Inline: script.Inline,
			Defer:  script.Defer,
			Attrs:  maps.Clone(script.Attrs),
		}
	}
	return clone
}

func scriptKey(script Script) string {
	if script.Src != "" {
		return "src:" + script.Src
	}
	return "inline:" + script.Inline
}

func normalize(name string) string {
	return strings.TrimSpace(name)
}
