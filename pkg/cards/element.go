package cards

import (
	"errors"

	"github.com/goliatone/go-cardgen/pkg/property"
	"github.com/goliatone/go-cardgen/pkg/version"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

var (
	// ErrOutOfRange is returned by index queries outside [0, ItemCount()).
	ErrOutOfRange = errors.New("cards: index out of range")
	// ErrAlreadyOwned is returned when adding an element that has a parent.
	ErrAlreadyOwned = errors.New("cards: element already has a parent")
	// ErrNilElement is returned when adding a nil element.
	ErrNilElement = errors.New("cards: element is nil")
)

// Element is a node of the card object tree. Concrete types embed
// BaseElement, which supplies the structural methods.
type Element interface {
	JSONTypeName() string
	Base() *BaseElement
	Parent() Element
	ID() string
	IsVisible() bool
	IsStandalone() bool
	ShouldFallback() bool

	// Parse populates the element from a decoded JSON object. Children must be
	// parsed through ctx so they follow the same rejection protocol.
	Parse(node map[string]any, ctx *SerializationContext)
	// ToJSON returns the element's members without "type".
	ToJSON(ctx *SerializationContext) map[string]any
	// Materialize produces the visual artifact, or nil when there is nothing
	// to show. Callers go through Render so the artifact is recorded.
	Materialize(rc *RenderContext) *visual.Node
}

// Properties shared by every element.
var (
	IDProperty        = property.String{Name: "id", MinVersion: version.V1_0}
	IsVisibleProperty = property.Bool{Name: "isVisible", MinVersion: version.V1_2, Default: true}
)

// BaseElement carries the state common to every element. The parent link is
// a non-owning back-reference used for host lookup and removal bookkeeping.
type BaseElement struct {
	parent     Element
	host       *Host
	noFallback bool
	rendered   *visual.Node
	props      property.Bag
}

// Base returns b. It lets code holding an Element reach the shared state.
func (b *BaseElement) Base() *BaseElement { return b }

// Parent returns the owning element, or nil for roots and detached elements.
func (b *BaseElement) Parent() Element { return b.parent }

// ID returns the element id.
func (b *BaseElement) ID() string { return IDProperty.Get(&b.props) }

// SetID sets the element id.
func (b *BaseElement) SetID(id string) { IDProperty.Set(&b.props, id) }

// IsVisible reports the isVisible member; elements are visible by default.
func (b *BaseElement) IsVisible() bool { return IsVisibleProperty.Get(&b.props) }

// SetVisible sets the isVisible member.
func (b *BaseElement) SetVisible(visible bool) { IsVisibleProperty.Set(&b.props, visible) }

// IsStandalone reports whether the element may be a document root.
func (b *BaseElement) IsStandalone() bool { return true }

// ShouldFallback reports whether the element may be replaced by a simpler
// representation when a capability is missing.
func (b *BaseElement) ShouldFallback() bool { return !b.noFallback }

// SetShouldFallback toggles structural fallback for the element.
func (b *BaseElement) SetShouldFallback(allow bool) { b.noFallback = !allow }

// RenderedElement returns the artifact recorded by the last Render pass.
func (b *BaseElement) RenderedElement() *visual.Node { return b.rendered }

// Props exposes the element's property bag to embedding types.
func (b *BaseElement) Props() *property.Bag { return &b.props }

// SetHost attaches a host. Elements without one inherit their parent's.
func (b *BaseElement) SetHost(h *Host) { b.host = h }

// Host resolves the element's host through the parent chain, falling back to
// a package default.
func (b *BaseElement) Host() *Host {
	for cur := b; cur != nil; {
		if cur.host != nil {
			return cur.host
		}
		if cur.parent == nil {
			break
		}
		cur = cur.parent.Base()
	}
	return defaultHost
}

func (b *BaseElement) setParent(parent Element) { b.parent = parent }

// ParseCommon reads the members every element supports.
func (b *BaseElement) ParseCommon(node map[string]any, ctx *SerializationContext) {
	if id, ok, err := IDProperty.Read(node); err != nil {
		ctx.invalidProperty(IDProperty.Name, err)
	} else if ok {
		b.SetID(id)
	}

	if _, present := node[IsVisibleProperty.Name]; present && !ctx.Version().AtLeast(IsVisibleProperty.MinVersion) {
		ctx.unsupportedProperty(IsVisibleProperty.Name, IsVisibleProperty.MinVersion)
		return
	}
	if visible, ok, err := IsVisibleProperty.Read(node); err != nil {
		ctx.invalidProperty(IsVisibleProperty.Name, err)
	} else if ok {
		b.SetVisible(visible)
	}
}

// WriteCommon adds the shared members to target.
func (b *BaseElement) WriteCommon(target map[string]any) {
	if id := b.ID(); id != "" {
		target[IDProperty.Name] = id
	}
	if !b.IsVisible() {
		target[IsVisibleProperty.Name] = false
	}
}

// renderResetter is implemented by elements that keep per-pass state beyond
// the recorded artifact.
type renderResetter interface {
	resetRendered()
}

// Render materializes el and records the artifact on it. Invisible elements
// produce nothing outside design mode.
func Render(el Element, rc *RenderContext) *visual.Node {
	if el == nil {
		return nil
	}
	if rc == nil {
		rc = &RenderContext{}
	}
	b := el.Base()
	if !el.IsVisible() && !rc.DesignMode {
		b.rendered = nil
		if r, ok := el.(renderResetter); ok {
			r.resetRendered()
		}
		return nil
	}
	node := el.Materialize(rc)
	if node != nil && node.ID == "" {
		node.ID = el.ID()
	}
	b.rendered = node
	return node
}

// ToJSON serializes el including its "type" member.
func ToJSON(el Element, ctx *SerializationContext) map[string]any {
	if el == nil {
		return nil
	}
	if ctx == nil {
		ctx = NewSerializationContext()
	}
	out := el.ToJSON(ctx)
	if out == nil {
		out = make(map[string]any)
	}
	out["type"] = el.JSONTypeName()
	return out
}
