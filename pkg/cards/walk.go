package cards

// Children returns the direct children of el in document order.
func Children(el Element) []Element {
	switch v := el.(type) {
	case nil:
		return nil
	case *Carousel:
		out := make([]Element, 0, len(v.pages))
		for _, page := range v.pages {
			out = append(out, page)
		}
		return out
	case interface{ Items() []Element }:
		return v.Items()
	}
	return nil
}

// Walk visits el and its descendants depth first. Returning false from fn
// skips the children of the current element.
func Walk(el Element, fn func(Element) bool) {
	if el == nil || fn == nil {
		return
	}
	if !fn(el) {
		return
	}
	for _, child := range Children(el) {
		Walk(child, fn)
	}
}

// RenderedTypes lists the type names of elements under root that produced an
// artifact in the last render pass, in first-seen order.
func RenderedTypes(root Element) []string {
	var names []string
	seen := make(map[string]struct{})
	Walk(root, func(el Element) bool {
		if el.Base().RenderedElement() == nil {
			return false
		}
		name := el.JSONTypeName()
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		return true
	})
	return names
}

// Carousels returns every carousel under root in document order.
func Carousels(root Element) []*Carousel {
	var out []*Carousel
	Walk(root, func(el Element) bool {
		if c, ok := el.(*Carousel); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
