package cards

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/goliatone/go-cardgen/pkg/property"
	"github.com/goliatone/go-cardgen/pkg/slider"
	"github.com/goliatone/go-cardgen/pkg/version"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

// CarouselTypeName is the JSON type of the paged composition.
const CarouselTypeName = "Carousel"

// TimerProperty is the autoplay delay in milliseconds. Its effective value is
// floored at the host's minimum autoplay delay.
var TimerProperty = property.Number{Name: "timer", MinVersion: version.V1_6, Floored: true}

// Carousel owns an ordered list of pages and tracks which of them produced an
// artifact during the last render pass.
type Carousel struct {
	BaseElement
	pages    []*Page
	rendered []int
	onLayout []func(*Carousel)
}

// NewCarousel creates an empty carousel.
func NewCarousel() *Carousel {
	return &Carousel{}
}

// JSONTypeName implements Element.
func (c *Carousel) JSONTypeName() string { return CarouselTypeName }

func (c *Carousel) floor() float64 {
	return c.Host().Config.MinAutoplayDelay()
}

// Timer returns the effective autoplay delay. A stored value below the host
// floor reads as the floor and records one BelowFloor event; the stored value
// is left as is.
func (c *Carousel) Timer() *float64 {
	raw := TimerProperty.Get(&c.props)
	floor := c.floor()
	effective, clamped := property.Clamp(raw, floor)
	if clamped {
		c.Host().Warn(c, BelowFloor, belowFloorMessage(*raw, floor))
	}
	return effective
}

// SetTimer stores the autoplay delay. A value below the floor is replaced by
// the floor and records one BelowFloor event. Nil clears the timer.
func (c *Carousel) SetTimer(value *float64) {
	floor := c.floor()
	stored, clamped := property.Clamp(value, floor)
	if clamped {
		c.Host().Warn(c, BelowFloor, belowFloorMessage(*value, floor))
	}
	TimerProperty.Set(&c.props, stored)
}

// RawTimer returns the stored delay without clamping.
func (c *Carousel) RawTimer() *float64 {
	return TimerProperty.Get(&c.props)
}

func belowFloorMessage(value, floor float64) string {
	return fmt.Sprintf("timer %gms is below the minimum autoplay delay %gms; using %gms", value, floor, floor)
}

// ItemCount returns the number of pages.
func (c *Carousel) ItemCount() int { return len(c.pages) }

// PageAt returns the page at index.
func (c *Carousel) PageAt(index int) (*Page, error) {
	if index < 0 || index >= len(c.pages) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(c.pages))
	}
	return c.pages[index], nil
}

// ItemAt returns the page at index as an Element.
func (c *Carousel) ItemAt(index int) (Element, error) {
	page, err := c.PageAt(index)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Pages returns a copy of the pages in declared order.
func (c *Carousel) Pages() []*Page {
	return slices.Clone(c.pages)
}

// AddPage appends page and takes ownership of it. A page that already has a
// parent is rejected, which keeps pages unique by identity.
func (c *Carousel) AddPage(page *Page) error {
	if page == nil {
		return ErrNilElement
	}
	if page.Parent() != nil {
		return ErrAlreadyOwned
	}
	page.setParent(c)
	c.pages = append(c.pages, page)
	c.rendered = nil
	c.updateLayout()
	return nil
}

// RemoveItem removes a page by identity, clears its parent and notifies
// layout listeners. It returns false, changing nothing, when item is not one
// of the carousel's pages.
func (c *Carousel) RemoveItem(item Element) bool {
	page, ok := item.(*Page)
	if !ok || page == nil {
		return false
	}
	idx := slices.Index(c.pages, page)
	if idx < 0 {
		return false
	}
	c.pages = slices.Delete(c.pages, idx, idx+1)
	page.setParent(nil)
	c.rendered = nil
	c.updateLayout()
	return true
}

// OnLayoutChange registers a listener fired after structural mutation.
func (c *Carousel) OnLayoutChange(fn func(*Carousel)) {
	if fn != nil {
		c.onLayout = append(c.onLayout, fn)
	}
}

func (c *Carousel) updateLayout() {
	for _, fn := range c.onLayout {
		fn(c)
	}
}

func (c *Carousel) resetRendered() { c.rendered = nil }

// RenderedPages returns the pages that produced an artifact in the last
// render pass, in declared order.
func (c *Carousel) RenderedPages() []*Page {
	out := make([]*Page, 0, len(c.rendered))
	for _, idx := range c.rendered {
		if idx >= 0 && idx < len(c.pages) {
			out = append(out, c.pages[idx])
		}
	}
	return out
}

// FirstVisibleRenderedItem returns the first rendered page, or nil before a
// render pass produced one.
func (c *Carousel) FirstVisibleRenderedItem() *Page {
	pages := c.visibleRendered()
	if len(pages) == 0 {
		return nil
	}
	return pages[0]
}

// LastVisibleRenderedItem returns the last rendered page, or nil before a
// render pass produced one.
func (c *Carousel) LastVisibleRenderedItem() *Page {
	pages := c.visibleRendered()
	if len(pages) == 0 {
		return nil
	}
	return pages[len(pages)-1]
}

func (c *Carousel) visibleRendered() []*Page {
	if c.rendered == nil || c.RenderedElement() == nil {
		return nil
	}
	return c.RenderedPages()
}

// Parse implements Element.
func (c *Carousel) Parse(node map[string]any, ctx *SerializationContext) {
	c.ParseCommon(node, ctx)
	c.parseTimer(node, ctx)

	c.pages = nil
	c.rendered = nil
	ctx.ParseArray(node, "pages", func(item any) {
		if page := c.parsePage(item, ctx); page != nil {
			c.pages = append(c.pages, page)
		}
	})
}

func (c *Carousel) parseTimer(node map[string]any, ctx *SerializationContext) {
	if _, present := node[TimerProperty.Name]; !present {
		return
	}
	if !TimerProperty.SupportedBy(ctx.Version()) {
		ctx.unsupportedProperty(TimerProperty.Name, TimerProperty.MinVersion)
		return
	}
	value, err := TimerProperty.Read(node)
	if err != nil {
		ctx.invalidProperty(TimerProperty.Name, err)
		return
	}
	c.SetTimer(value)
}

func (c *Carousel) parsePage(item any, ctx *SerializationContext) *Page {
	el := ctx.ParseChild(c, item, ParseChildOptions{
		Disallowed:    PageUnsupportedElements,
		AllowFallback: !ctx.DesignMode(),
		ResolveType: func(typeName string) Element {
			if typeName == "" || typeName == PageTypeName {
				return NewPage()
			}
			return nil
		},
	})
	page, _ := el.(*Page)
	return page
}

// ToJSON implements Element. Pages are always emitted; timer only when the
// target version supports it.
func (c *Carousel) ToJSON(ctx *SerializationContext) map[string]any {
	out := make(map[string]any)
	c.WriteCommon(out)
	if timer := c.RawTimer(); timer != nil && TimerProperty.SupportedBy(ctx.Version()) {
		out[TimerProperty.Name] = *timer
	}
	pages := make([]Element, 0, len(c.pages))
	for _, p := range c.pages {
		pages = append(pages, p)
	}
	ctx.SerializeArray(out, "pages", pages)
	return out
}

// Materialize runs a render pass. The rendered subset is reset first; the
// carousel yields nothing when it has no pages or no page rendered.
func (c *Carousel) Materialize(rc *RenderContext) *visual.Node {
	c.rendered = nil
	if len(c.pages) == 0 {
		return nil
	}

	host := c.Host()
	root := visual.New("div").AddClass(host.classNames("carousel")...)
	container := visual.New("div", "swiper").AddClass(host.classNames("swiper")...)
	wrapper := visual.New("div", "swiper-wrapper").AddClass(host.classNames("swiper-wrapper")...)
	wrapper.SetStyle("display", "flex")

	rendered := make([]int, 0, len(c.pages))
	for i, page := range c.pages {
		if !rc.Permits(page) {
			continue
		}
		artifact := Render(page, rc)
		if artifact == nil {
			continue
		}
		wrapper.Append(artifact)
		rendered = append(rendered, i)
	}
	c.rendered = rendered
	if len(rendered) == 0 {
		return nil
	}

	adornments := slider.Adornments{
		Prev:       visual.New("button", "swiper-button-prev").SetAttr("aria-label", "Previous slide"),
		Next:       visual.New("button", "swiper-button-next").SetAttr("aria-label", "Next slide"),
		Pagination: visual.New("div", "swiper-pagination"),
	}
	container.Append(wrapper, adornments.Prev, adornments.Next, adornments.Pagination)
	root.Append(container)

	c.mountSlider(rc, container, adornments)
	return root
}

func (c *Carousel) mountSlider(rc *RenderContext, container *visual.Node, adornments slider.Adornments) {
	if rc.Slider == nil {
		return
	}
	opts := slider.DefaultOptions()
	if timer := c.Timer(); timer != nil && !rc.DesignMode {
		opts.Autoplay = &slider.Autoplay{Delay: *timer}
	}
	if err := rc.Slider.Mount(container, adornments, opts); err != nil {
		rc.logger().Warn("carousel slider mount failed",
			slog.String("id", c.ID()),
			slog.Any("error", err),
		)
	}
}
