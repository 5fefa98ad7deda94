package cards

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/hostconfig"
	"github.com/goliatone/go-cardgen/pkg/property"
	"github.com/goliatone/go-cardgen/pkg/slider"
	"github.com/goliatone/go-cardgen/pkg/version"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func floorConfig(floor float64) hostconfig.HostConfig {
	cfg := hostconfig.Default()
	cfg.Carousel.MinAutoplayDelay = floor
	return cfg
}

func quietHost(floor float64) *Host {
	host := NewHost(floorConfig(floor))
	host.Logger = quietLogger()
	return host
}

func mustParseCarousel(t *testing.T, doc string, opts ...ParseOption) (*Carousel, *Result) {
	t.Helper()
	opts = append([]ParseOption{WithLogger(quietLogger())}, opts...)
	res, err := Parse([]byte(doc), opts...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	carousel, ok := res.Root.(*Carousel)
	if !ok {
		t.Fatalf("expected *Carousel root, got %T (events: %v)", res.Root, res.Events)
	}
	return carousel, res
}

func TestNewCarouselIsEmpty(t *testing.T) {
	c := NewCarousel()
	if c.JSONTypeName() != "Carousel" {
		t.Fatalf("unexpected type name %q", c.JSONTypeName())
	}
	if c.ItemCount() != 0 {
		t.Fatalf("expected no pages, got %d", c.ItemCount())
	}
	if c.FirstVisibleRenderedItem() != nil || c.LastVisibleRenderedItem() != nil {
		t.Fatalf("fresh carousel should have no visible rendered items")
	}
	if c.Timer() != nil {
		t.Fatalf("fresh carousel should have no timer")
	}
}

func TestParseCarouselRejectsDisallowedPage(t *testing.T) {
	carousel, res := mustParseCarousel(t, `{"type":"Carousel","pages":[{"type":"CarouselPage"},{"type":"Media"}]}`)

	if carousel.ItemCount() != 1 {
		t.Fatalf("expected 1 page, got %d", carousel.ItemCount())
	}
	page, err := carousel.PageAt(0)
	if err != nil {
		t.Fatalf("page at 0: %v", err)
	}
	if page.IsStandalone() {
		t.Fatalf("pages must never be standalone")
	}
	if page.ShouldFallback() {
		t.Fatalf("parsed pages must not fall back")
	}
	if page.Parent() != carousel {
		t.Fatalf("page parent should be the carousel")
	}

	want := Events{{
		Kind:     DisallowedType,
		Path:     "/pages/1",
		TypeName: "Media",
		Message:  `element type "Media" is not allowed here`,
	}}
	if diff := cmp.Diff(want, res.Events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCarouselCountsOnlyAcceptedPages(t *testing.T) {
	cases := []struct {
		name  string
		pages string
		want  int
		kinds []EventKind
	}{
		{name: "empty", pages: `[]`, want: 0},
		{name: "typed and untyped pages", pages: `[{"type":"CarouselPage"},{}]`, want: 2},
		{
			name:  "unknown type in pages",
			pages: `[{"type":"TextBlock","text":"x"},{"type":"CarouselPage"}]`,
			want:  1,
			kinds: []EventKind{UnknownType},
		},
		{
			name:  "non-object entries",
			pages: `[42,"page",{"type":"CarouselPage"},{"type":7}]`,
			want:  1,
			kinds: []EventKind{InvalidPropertyValue, InvalidPropertyValue, UnknownType},
		},
		{
			name:  "every denied type",
			pages: `[{"type":"Action.ShowCard"},{"type":"Input.Text"},{"type":"ActionSet"},{}]`,
			want:  1,
			kinds: []EventKind{DisallowedType, DisallowedType, DisallowedType},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			carousel, res := mustParseCarousel(t, `{"type":"Carousel","pages":`+tc.pages+`}`)
			if carousel.ItemCount() != tc.want {
				t.Fatalf("expected %d pages, got %d", tc.want, carousel.ItemCount())
			}
			var kinds []EventKind
			for _, ev := range res.Events {
				kinds = append(kinds, ev.Kind)
			}
			if diff := cmp.Diff(tc.kinds, kinds); diff != "" {
				t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCarouselPageFallback(t *testing.T) {
	doc := `{"type":"Carousel","pages":[
		{"type":"FancyPage","fallback":"drop"},
		{"type":"FancyPage","fallback":{"type":"CarouselPage","id":"plain"}}
	]}`

	carousel, res := mustParseCarousel(t, doc)
	if len(res.Events) != 0 {
		t.Fatalf("expected no events, got %v", res.Events)
	}
	if carousel.ItemCount() != 1 {
		t.Fatalf("expected fallback page only, got %d", carousel.ItemCount())
	}
	if page, _ := carousel.PageAt(0); page.ID() != "plain" {
		t.Fatalf("expected fallback page, got id %q", page.ID())
	}

	carousel, res = mustParseCarousel(t, doc, WithDesignMode(true))
	if carousel.ItemCount() != 0 {
		t.Fatalf("design mode must not use fallback, got %d pages", carousel.ItemCount())
	}
	if len(res.Events) != 2 || res.Events[0].Kind != UnknownType {
		t.Fatalf("expected two unknown type events, got %v", res.Events)
	}
}

func TestCarouselRemoveItem(t *testing.T) {
	c := NewCarousel()
	first, second := NewPage(), NewPage()
	for _, p := range []*Page{first, second} {
		if err := c.AddPage(p); err != nil {
			t.Fatalf("add page: %v", err)
		}
	}

	notified := 0
	c.OnLayoutChange(func(*Carousel) { notified++ })

	if c.RemoveItem(NewPage()) {
		t.Fatalf("removing a foreign page should report false")
	}
	if c.RemoveItem(NewTextBlock("x")) {
		t.Fatalf("removing a non-page should report false")
	}
	if c.ItemCount() != 2 || notified != 0 {
		t.Fatalf("failed removals must not change state: count=%d notified=%d", c.ItemCount(), notified)
	}

	if !c.RemoveItem(first) {
		t.Fatalf("expected removal to succeed")
	}
	if c.ItemCount() != 1 {
		t.Fatalf("expected 1 page, got %d", c.ItemCount())
	}
	if first.Parent() != nil {
		t.Fatalf("removed page should have no parent")
	}
	if notified != 1 {
		t.Fatalf("expected one layout notification, got %d", notified)
	}
	if remaining, _ := c.PageAt(0); remaining != second {
		t.Fatalf("expected second page to remain")
	}
	if c.RemoveItem(first) {
		t.Fatalf("removing twice should report false")
	}
}

func TestCarouselAddPageKeepsIdentityUnique(t *testing.T) {
	c := NewCarousel()
	page := NewPage()
	if err := c.AddPage(page); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if err := c.AddPage(page); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
	if err := NewCarousel().AddPage(page); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned from another carousel, got %v", err)
	}
	if err := c.AddPage(nil); !errors.Is(err, ErrNilElement) {
		t.Fatalf("expected ErrNilElement, got %v", err)
	}
	if c.ItemCount() != 1 {
		t.Fatalf("expected a single page, got %d", c.ItemCount())
	}
}

func TestCarouselPageAtOutOfRange(t *testing.T) {
	c := NewCarousel()
	if err := c.AddPage(NewPage()); err != nil {
		t.Fatalf("add page: %v", err)
	}
	for _, idx := range []int{-1, 1, 5} {
		if _, err := c.PageAt(idx); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("index %d: expected ErrOutOfRange, got %v", idx, err)
		}
		if _, err := c.ItemAt(idx); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("index %d: expected ErrOutOfRange from ItemAt, got %v", idx, err)
		}
	}
}

func TestCarouselSetTimerClampsOnce(t *testing.T) {
	host := quietHost(5)
	c := NewCarousel()
	c.SetHost(host)

	c.SetTimer(property.Float(1))
	if got := c.RawTimer(); got == nil || *got != 5 {
		t.Fatalf("expected stored floor 5, got %v", got)
	}
	if got := c.Timer(); got == nil || *got != 5 {
		t.Fatalf("expected effective timer 5, got %v", got)
	}
	if n := host.Events.Count(BelowFloor); n != 1 {
		t.Fatalf("expected exactly one BelowFloor event, got %d", n)
	}

	c.SetTimer(property.Float(10))
	if got := c.Timer(); got == nil || *got != 10 {
		t.Fatalf("expected timer 10, got %v", got)
	}

	c.SetTimer(nil)
	if c.Timer() != nil || c.RawTimer() != nil {
		t.Fatalf("nil should clear the timer")
	}
	if n := host.Events.Count(BelowFloor); n != 1 {
		t.Fatalf("in-range writes must not warn, got %d events", n)
	}
}

func TestCarouselTimerReadDoesNotMutate(t *testing.T) {
	host := quietHost(5000)
	c := NewCarousel()
	c.SetHost(host)
	c.SetTimer(property.Float(6000))

	host.Config.Carousel.MinAutoplayDelay = 8000

	for i := 1; i <= 2; i++ {
		if got := c.Timer(); got == nil || *got != 8000 {
			t.Fatalf("read %d: expected floor 8000, got %v", i, got)
		}
		if raw := c.RawTimer(); raw == nil || *raw != 6000 {
			t.Fatalf("read %d: stored value changed to %v", i, raw)
		}
		if n := host.Events.Count(BelowFloor); n != i {
			t.Fatalf("read %d: expected %d events, got %d", i, i, n)
		}
	}
}

func TestCarouselTimerEndToEnd(t *testing.T) {
	carousel, res := mustParseCarousel(t,
		`{"type":"Carousel","timer":1,"pages":[{"type":"CarouselPage"}]}`,
		WithHostConfig(floorConfig(5)),
	)

	if got := carousel.Timer(); got == nil || *got != 5 {
		t.Fatalf("expected effective timer 5, got %v", got)
	}
	if n := len(res.Events.OfKind(BelowFloor)); n != 1 {
		t.Fatalf("expected one BelowFloor event, got %d (%v)", n, res.Events)
	}

	var rec slider.Recorder
	if Render(carousel, &RenderContext{Slider: &rec}) == nil {
		t.Fatalf("expected an artifact")
	}
	mount, ok := rec.Last()
	if !ok || mount.Options.Autoplay == nil || mount.Options.Autoplay.Delay != 5 {
		t.Fatalf("expected autoplay delay 5, got %+v", mount.Options)
	}

	rec.Reset()
	if Render(carousel, &RenderContext{Slider: &rec, DesignMode: true}) == nil {
		t.Fatalf("expected an artifact in design mode")
	}
	mount, ok = rec.Last()
	if !ok || mount.Options.Autoplay != nil {
		t.Fatalf("design mode must not autoplay, got %+v", mount.Options)
	}
	if !mount.Options.Loop || !mount.Options.Keyboard || !mount.Options.A11y {
		t.Fatalf("expected default slider options, got %+v", mount.Options)
	}
}

func TestCarouselTimerRequiresVersion16(t *testing.T) {
	reg := NewRegistry()
	reg.Register(CarouselTypeName, func() Element { return NewCarousel() }, version.V1_0)

	carousel, res := mustParseCarousel(t,
		`{"type":"Carousel","timer":9000,"pages":[]}`,
		WithRegistry(reg),
		WithTargetVersion(version.V1_5),
	)
	if carousel.RawTimer() != nil {
		t.Fatalf("timer must be ignored before 1.6")
	}
	want := Events{{
		Kind:    UnsupportedProperty,
		Path:    "/timer",
		Message: `property "timer" requires schema 1.6, document targets 1.5`,
	}}
	if diff := cmp.Diff(want, res.Events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCarouselUnknownBeforeVersion16(t *testing.T) {
	res, err := Parse([]byte(`{"type":"Carousel","pages":[]}`),
		WithTargetVersion(version.V1_5),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Root != nil {
		t.Fatalf("expected no root, got %T", res.Root)
	}
	if len(res.Events) != 1 || res.Events[0].Kind != UnknownType {
		t.Fatalf("expected a single unknown type event, got %v", res.Events)
	}
}

func TestCarouselInvalidTimer(t *testing.T) {
	carousel, res := mustParseCarousel(t, `{"type":"Carousel","timer":"fast","pages":[]}`)
	if carousel.RawTimer() != nil {
		t.Fatalf("invalid timer must stay absent")
	}
	if len(res.Events) != 1 || res.Events[0].Kind != InvalidPropertyValue || res.Events[0].Path != "/timer" {
		t.Fatalf("unexpected events %v", res.Events)
	}
}

func TestRenderEmptyCarouselYieldsNothing(t *testing.T) {
	var rec slider.Recorder
	c := NewCarousel()
	if Render(c, &RenderContext{Slider: &rec}) != nil {
		t.Fatalf("empty carousel must not produce an artifact")
	}
	if len(rec.Mounts()) != 0 {
		t.Fatalf("slider must not mount without pages")
	}
	if c.FirstVisibleRenderedItem() != nil {
		t.Fatalf("expected no visible items")
	}
}

func TestRenderTracksRenderedSubsequence(t *testing.T) {
	c := NewCarousel()
	pages := []*Page{NewPage(), NewPage(), NewPage(), NewPage()}
	for _, p := range pages {
		if err := c.AddPage(p); err != nil {
			t.Fatalf("add page: %v", err)
		}
	}
	pages[1].SetVisible(false)
	excluded := pages[3]

	var rec slider.Recorder
	rc := &RenderContext{
		Slider: &rec,
		Policy: Policy{Filter: func(el Element) bool { return el != excluded }},
	}
	artifact := Render(c, rc)
	if artifact == nil {
		t.Fatalf("expected an artifact")
	}

	assertPages(t, []*Page{pages[0], pages[2]}, c.RenderedPages())
	if c.FirstVisibleRenderedItem() != pages[0] || c.LastVisibleRenderedItem() != pages[2] {
		t.Fatalf("unexpected visible boundary pages")
	}

	slides := artifact.FindAll(visual.WithClass("swiper-slide"))
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	for _, class := range []string{"swiper-button-prev", "swiper-button-next", "swiper-pagination"} {
		if artifact.Find(visual.WithClass(class)) == nil {
			t.Fatalf("missing adornment %q", class)
		}
	}
	wrapper := artifact.Find(visual.WithClass("swiper-wrapper"))
	if wrapper == nil || wrapper.Style["display"] != "flex" {
		t.Fatalf("expected flex wrapper")
	}
	mount, ok := rec.Last()
	if !ok || mount.Container != artifact.Find(visual.WithClass("swiper")) {
		t.Fatalf("slider should mount on the swiper container")
	}
	if mount.Options.Autoplay != nil {
		t.Fatalf("no timer means no autoplay")
	}
}

func TestRenderWithNoVisiblePagesYieldsNothing(t *testing.T) {
	c := NewCarousel()
	page := NewPage()
	if err := c.AddPage(page); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if Render(c, nil) == nil {
		t.Fatalf("expected an artifact")
	}
	if c.FirstVisibleRenderedItem() != page {
		t.Fatalf("expected page to be visible")
	}

	page.SetVisible(false)
	var rec slider.Recorder
	if Render(c, &RenderContext{Slider: &rec}) != nil {
		t.Fatalf("expected no artifact when every page is hidden")
	}
	if len(c.RenderedPages()) != 0 || c.FirstVisibleRenderedItem() != nil || c.LastVisibleRenderedItem() != nil {
		t.Fatalf("rendered pages must reset on every pass")
	}
	if len(rec.Mounts()) != 0 {
		t.Fatalf("slider must not mount when nothing rendered")
	}
}

func TestHiddenCarouselClearsRenderedPages(t *testing.T) {
	c := NewCarousel()
	page := NewPage()
	if err := c.AddPage(page); err != nil {
		t.Fatalf("add page: %v", err)
	}
	if Render(c, nil) == nil || len(c.RenderedPages()) != 1 {
		t.Fatalf("expected one rendered page")
	}

	c.SetVisible(false)
	if Render(c, nil) != nil {
		t.Fatalf("hidden carousel should not render")
	}
	if len(c.RenderedPages()) != 0 || c.FirstVisibleRenderedItem() != nil || c.LastVisibleRenderedItem() != nil {
		t.Fatalf("hidden carousel must not report pages from an earlier pass")
	}
}

func TestRemoveItemInvalidatesRenderedPages(t *testing.T) {
	c := NewCarousel()
	page := NewPage()
	if err := c.AddPage(page); err != nil {
		t.Fatalf("add page: %v", err)
	}
	Render(c, nil)
	if !c.RemoveItem(page) {
		t.Fatalf("expected removal")
	}
	if len(c.RenderedPages()) != 0 || c.FirstVisibleRenderedItem() != nil {
		t.Fatalf("structural mutation must clear the rendered view")
	}
}

func TestCarouselToJSON(t *testing.T) {
	c := NewCarousel()
	c.SetHost(quietHost(5000))
	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertJSON(t, `{"type":"Carousel","pages":[]}`, data)

	c.SetTimer(property.Float(7000))
	page := NewPage()
	if err := page.AddItem(NewTextBlock("hello")); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := c.AddPage(page); err != nil {
		t.Fatalf("add page: %v", err)
	}
	data, err = Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertJSON(t, `{"type":"Carousel","timer":7000,"pages":[{"type":"CarouselPage","items":[{"type":"TextBlock","text":"hello"}]}]}`, data)

	data, err = Marshal(c, WithTargetVersion(version.V1_5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assertJSON(t, `{"type":"Carousel","pages":[{"type":"CarouselPage","items":[{"type":"TextBlock","text":"hello"}]}]}`, data)
}

func assertPages(t *testing.T, want, got []*Page) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d pages, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("page %d differs", i)
		}
	}
}

func assertJSON(t *testing.T, want string, got []byte) {
	t.Helper()
	var wantValue, gotValue any
	if err := json.Unmarshal([]byte(want), &wantValue); err != nil {
		t.Fatalf("decode want: %v", err)
	}
	if err := json.Unmarshal(got, &gotValue); err != nil {
		t.Fatalf("decode got: %v", err)
	}
	if diff := cmp.Diff(wantValue, gotValue); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}
