// Package visual holds the artifact tree produced when card elements are
// materialized. Renderers turn the tree into bytes (HTML, terminal text); the
// element tree never depends on a concrete output format.
package visual

import (
	"maps"
	"slices"
)

// Node is one visual artifact. Text is plain content; Markup is document
// supplied inline markup that a renderer must sanitise before emitting.
type Node struct {
	Tag      string
	ID       string
	Classes  []string
	Attrs    map[string]string
	Style    map[string]string
	Text     string
	Markup   string
	Children []*Node
}

// New creates a node with the given tag and classes. Blank class names are
// dropped.
func New(tag string, classes ...string) *Node {
	n := &Node{Tag: tag}
	n.AddClass(classes...)
	return n
}

// Append attaches children in order, skipping nil artifacts, and returns n.
func (n *Node) Append(children ...*Node) *Node {
	if n == nil {
		return nil
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		n.Children = append(n.Children, child)
	}
	return n
}

// AddClass appends class names that are not already present.
func (n *Node) AddClass(classes ...string) *Node {
	if n == nil {
		return nil
	}
	for _, class := range classes {
		if class == "" || slices.Contains(n.Classes, class) {
			continue
		}
		n.Classes = append(n.Classes, class)
	}
	return n
}

// HasClass reports whether class is set on n.
func (n *Node) HasClass(class string) bool {
	return n != nil && slices.Contains(n.Classes, class)
}

// SetAttr stores an attribute; an empty value removes it.
func (n *Node) SetAttr(key, value string) *Node {
	if n == nil || key == "" {
		return n
	}
	if value == "" {
		delete(n.Attrs, key)
		return n
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
	return n
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[key]
}

// SetStyle stores an inline style declaration.
func (n *Node) SetStyle(property, value string) *Node {
	if n == nil || property == "" {
		return n
	}
	if n.Style == nil {
		n.Style = make(map[string]string)
	}
	n.Style[property] = value
	return n
}

// AttrNames returns attribute keys sorted for deterministic output.
func (n *Node) AttrNames() []string {
	if n == nil {
		return nil
	}
	names := slices.Collect(maps.Keys(n.Attrs))
	slices.Sort(names)
	return names
}

// StyleNames returns style properties sorted for deterministic output.
func (n *Node) StyleNames() []string {
	if n == nil {
		return nil
	}
	names := slices.Collect(maps.Keys(n.Style))
	slices.Sort(names)
	return names
}

// Walk visits n and its descendants depth first. Returning false from fn skips
// the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || fn == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the first node, in depth-first order, accepted by match.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(candidate *Node) bool {
		if found != nil {
			return false
		}
		if match(candidate) {
			found = candidate
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node accepted by match in depth-first order.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(candidate *Node) bool {
		if match(candidate) {
			out = append(out, candidate)
		}
		return true
	})
	return out
}

// WithClass is a Find helper matching nodes carrying class.
func WithClass(class string) func(*Node) bool {
	return func(n *Node) bool {
		return n.HasClass(class)
	}
}
