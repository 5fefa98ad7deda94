package cards

import "github.com/goliatone/go-cardgen/pkg/visual"

// PageTypeName is the JSON type of a carousel page.
const PageTypeName = "CarouselPage"

// PageUnsupportedElements are the child types a page rejects.
var PageUnsupportedElements = []string{
	"Action.ShowCard",
	"Action.ToggleVisibility",
	"Media",
	"ActionSet",
	"Input.Text",
	"Input.Date",
	"Input.Time",
	"Input.Number",
	"Input.ChoiceSet",
	"Input.Toggle",
}

// Page is one slide of a Carousel. It cannot be a document root and parses
// its children without structural fallback.
type Page struct {
	Container
}

// NewPage creates an empty page.
func NewPage() *Page {
	p := &Page{}
	p.Container = Container{itemsKey: "items", owner: p}
	return p
}

// JSONTypeName implements Element.
func (p *Page) JSONTypeName() string { return PageTypeName }

// IsStandalone is always false for pages.
func (p *Page) IsStandalone() bool { return false }

// Parse implements Element.
func (p *Page) Parse(node map[string]any, ctx *SerializationContext) {
	p.ParseCommon(node, ctx)
	ctx.Scope(PageUnsupportedElements, true, func() {
		p.parseItems(node, ctx)
	})
	p.SetShouldFallback(false)
}

// Materialize wraps the page content in a slide node. A page always yields
// its slide, even when no child rendered.
func (p *Page) Materialize(rc *RenderContext) *visual.Node {
	slide := visual.New("div", "swiper-slide").AddClass(p.Host().classNames("swiper-slide")...)
	slide.Append(p.renderItems(rc, "container"))
	return slide
}
