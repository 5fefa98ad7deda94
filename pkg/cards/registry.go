package cards

import (
	"sync"

	"github.com/goliatone/go-cardgen/pkg/registry"
	"github.com/goliatone/go-cardgen/pkg/version"
)

var (
	globalOnce     sync.Once
	globalRegistry *registry.Registry[Element]
)

// GlobalRegistry returns the process-wide element registry, installing the
// built-in element types on first use.
func GlobalRegistry() *registry.Registry[Element] {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry returns a fresh registry holding the built-in element types.
func NewRegistry() *registry.Registry[Element] {
	reg := registry.New[Element]()
	RegisterDefaults(reg)
	return reg
}

// RegisterDefaults installs the built-in element types into reg.
func RegisterDefaults(reg *registry.Registry[Element]) {
	reg.Register(TextBlockTypeName, func() Element { return NewTextBlock("") }, version.V1_0)
	reg.Register(ImageTypeName, func() Element { return NewImage("", "") }, version.V1_0)
	reg.Register(ContainerTypeName, func() Element { return NewContainer() }, version.V1_0)
	reg.Register(CarouselTypeName, func() Element { return NewCarousel() }, version.V1_6)
}
