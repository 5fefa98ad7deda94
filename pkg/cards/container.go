package cards

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-cardgen/pkg/visual"
)

// ContainerTypeName is the JSON type of a plain container.
const ContainerTypeName = "Container"

// Container owns an ordered list of child elements. Types embedding it set
// owner so children point at the outer element.
type Container struct {
	BaseElement
	itemsKey string
	owner    Element
	items    []Element
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{itemsKey: "items"}
}

func (c *Container) self() Element {
	if c.owner != nil {
		return c.owner
	}
	return c
}

func (c *Container) key() string {
	if c.itemsKey == "" {
		return "items"
	}
	return c.itemsKey
}

// JSONTypeName implements Element.
func (c *Container) JSONTypeName() string { return ContainerTypeName }

// ItemCount returns the number of children.
func (c *Container) ItemCount() int { return len(c.items) }

// ItemAt returns the child at index.
func (c *Container) ItemAt(index int) (Element, error) {
	if index < 0 || index >= len(c.items) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(c.items))
	}
	return c.items[index], nil
}

// Items returns a copy of the children in order.
func (c *Container) Items() []Element {
	return slices.Clone(c.items)
}

// AddItem appends el and takes ownership of it.
func (c *Container) AddItem(el Element) error {
	if el == nil {
		return ErrNilElement
	}
	if el.Parent() != nil {
		return ErrAlreadyOwned
	}
	el.Base().setParent(c.self())
	c.items = append(c.items, el)
	return nil
}

// RemoveItem removes el by identity and clears its parent.
func (c *Container) RemoveItem(el Element) bool {
	idx := slices.IndexFunc(c.items, func(item Element) bool { return item == el })
	if idx < 0 {
		return false
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	el.Base().setParent(nil)
	return true
}

// Parse implements Element.
func (c *Container) Parse(node map[string]any, ctx *SerializationContext) {
	c.ParseCommon(node, ctx)
	c.parseItems(node, ctx)
}

func (c *Container) parseItems(node map[string]any, ctx *SerializationContext) {
	c.items = nil
	owner := c.self()
	ctx.ParseArray(node, c.key(), func(item any) {
		if el := ctx.ParseElement(owner, item, true, nil); el != nil {
			c.items = append(c.items, el)
		}
	})
}

// ToJSON implements Element.
func (c *Container) ToJSON(ctx *SerializationContext) map[string]any {
	out := make(map[string]any)
	c.WriteCommon(out)
	ctx.SerializeArray(out, c.key(), c.items)
	return out
}

// Materialize implements Element. An empty container yields nothing outside
// design mode.
func (c *Container) Materialize(rc *RenderContext) *visual.Node {
	return c.renderItems(rc, "container")
}

func (c *Container) renderItems(rc *RenderContext, class string) *visual.Node {
	node := visual.New("div").AddClass(c.Host().classNames(class)...)
	for _, item := range c.items {
		if !rc.Permits(item) {
			continue
		}
		node.Append(Render(item, rc))
	}
	if len(node.Children) == 0 && !rc.DesignMode {
		return nil
	}
	return node
}
