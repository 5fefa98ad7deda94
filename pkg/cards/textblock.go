package cards

import (
	"github.com/goliatone/go-cardgen/pkg/property"
	"github.com/goliatone/go-cardgen/pkg/version"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

// TextBlockTypeName is the JSON type of a text block.
const TextBlockTypeName = "TextBlock"

// TextBlock properties.
var (
	TextProperty = property.String{Name: "text", MinVersion: version.V1_0}
	WrapProperty = property.Bool{Name: "wrap", MinVersion: version.V1_0}
)

// TextBlock displays a run of text. The text may carry inline markup, which
// renderers sanitise.
type TextBlock struct {
	BaseElement
}

// NewTextBlock creates a text block holding text.
func NewTextBlock(text string) *TextBlock {
	tb := &TextBlock{}
	tb.SetText(text)
	return tb
}

// JSONTypeName implements Element.
func (t *TextBlock) JSONTypeName() string { return TextBlockTypeName }

// Text returns the text content.
func (t *TextBlock) Text() string { return TextProperty.Get(&t.props) }

// SetText replaces the text content.
func (t *TextBlock) SetText(text string) { TextProperty.Set(&t.props, text) }

// Wrap reports whether long lines wrap.
func (t *TextBlock) Wrap() bool { return WrapProperty.Get(&t.props) }

// SetWrap toggles line wrapping.
func (t *TextBlock) SetWrap(wrap bool) { WrapProperty.Set(&t.props, wrap) }

// Parse implements Element.
func (t *TextBlock) Parse(node map[string]any, ctx *SerializationContext) {
	t.ParseCommon(node, ctx)
	if text, ok, err := TextProperty.Read(node); err != nil {
		ctx.invalidProperty(TextProperty.Name, err)
	} else if ok {
		t.SetText(text)
	}
	if wrap, ok, err := WrapProperty.Read(node); err != nil {
		ctx.invalidProperty(WrapProperty.Name, err)
	} else if ok {
		WrapProperty.Set(&t.props, wrap)
	}
}

// ToJSON implements Element.
func (t *TextBlock) ToJSON(_ *SerializationContext) map[string]any {
	out := map[string]any{TextProperty.Name: t.Text()}
	t.WriteCommon(out)
	if t.Wrap() {
		out[WrapProperty.Name] = true
	}
	return out
}

// Materialize implements Element. Empty text yields nothing.
func (t *TextBlock) Materialize(_ *RenderContext) *visual.Node {
	text := t.Text()
	if text == "" {
		return nil
	}
	node := visual.New("p").AddClass(t.Host().classNames("textBlock")...)
	node.Markup = text
	if t.Wrap() {
		node.SetStyle("white-space", "normal")
	} else {
		node.SetStyle("white-space", "nowrap")
	}
	return node
}
