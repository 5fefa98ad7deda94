package cards

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-cardgen/pkg/version"
)

var (
	// ErrNotObject is returned when a document root is not a JSON object.
	ErrNotObject = errors.New("cards: document root is not a JSON object")
	// ErrNotStandalone is returned when the root element cannot stand alone.
	ErrNotStandalone = errors.New("cards: root element cannot stand alone")
)

// Result is the outcome of a parse pass. Root is nil when the root node was
// rejected; the reason is in Events.
type Result struct {
	Root    Element
	Events  Events
	Version version.Version
}

// Parse decodes a card document. Unknown or disallowed nodes are dropped and
// reported in Result.Events; only a non-object or non-standalone root fails.
func Parse(data []byte, opts ...ParseOption) (*Result, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cards: decode document: %w", err)
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, jsonKind(raw))
	}
	return ParseNode(node, NewSerializationContext(opts...))
}

// ParseNode parses an already decoded root object with ctx.
func ParseNode(node map[string]any, ctx *SerializationContext) (*Result, error) {
	if node == nil {
		return nil, ErrNotObject
	}
	if ctx == nil {
		ctx = NewSerializationContext()
	}

	typeName, _ := readTypeName(node)
	if typeName == AdaptiveCardTypeName {
		v, ok, err := readDocumentVersion(node)
		if err != nil {
			pop := ctx.Enter("version")
			ctx.LogEvent(InvalidPropertyValue, AdaptiveCardTypeName, err.Error())
			pop()
		} else if ok {
			ctx.SetVersion(v)
		}
		card := NewAdaptiveCard(ctx.Version())
		card.SetHost(ctx.Host())
		card.Parse(node, ctx)
		return ctx.result(card), nil
	}

	root := ctx.ParseElement(nil, node, !ctx.DesignMode(), nil)
	if root == nil {
		return ctx.result(nil), nil
	}
	if !root.IsStandalone() {
		ctx.LogEvent(NotStandalone, root.JSONTypeName(), fmt.Sprintf("element type %q cannot be a document root", root.JSONTypeName()))
		return ctx.result(nil), fmt.Errorf("%w: %s", ErrNotStandalone, root.JSONTypeName())
	}
	return ctx.result(root), nil
}

func (c *SerializationContext) result(root Element) *Result {
	return &Result{
		Root:    root,
		Events:  c.events.Events(),
		Version: c.version,
	}
}

// Marshal serializes el, including nested children, to JSON.
func Marshal(el Element, opts ...ParseOption) ([]byte, error) {
	if el == nil {
		return nil, fmt.Errorf("cards: marshal: %w", ErrNilElement)
	}
	ctx := NewSerializationContext(opts...)
	if card, ok := el.(*AdaptiveCard); ok && !card.Version().IsZero() {
		ctx.SetVersion(card.Version())
	}
	data, err := json.Marshal(ToJSON(el, ctx))
	if err != nil {
		return nil, fmt.Errorf("cards: marshal %s: %w", el.JSONTypeName(), err)
	}
	return data, nil
}
