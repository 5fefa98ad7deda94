package orchestrator_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/hostconfig"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/schema"
	"github.com/goliatone/go-cardgen/pkg/version"
)

const deckDoc = `{"type":"AdaptiveCard","version":"1.6","body":[
	{"type":"TextBlock","id":"title","text":"Deck"},
	{"type":"Carousel","id":"deck","timer":6000,"pages":[
		{"items":[{"type":"TextBlock","text":"one"}]},
		{"type":"Media","sources":[]},
		{"items":[{"type":"Image","id":"hero","url":"https://example.com/hero.png"}]}
	]}
]}`

type stubLoader struct {
	doc     schema.Document
	err     error
	sources []schema.Source
}

func (s *stubLoader) Load(_ context.Context, src schema.Source) (schema.Document, error) {
	s.sources = append(s.sources, src)
	return s.doc, s.err
}

type stubRenderer struct {
	name    string
	root    cards.Element
	options render.RenderOptions
	calls   int
}

func (s *stubRenderer) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubRenderer) ContentType() string { return "text/plain" }

func (s *stubRenderer) Render(_ context.Context, root cards.Element, options render.RenderOptions) ([]byte, error) {
	s.calls++
	s.root = root
	s.options = options
	return []byte("rendered"), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func TestGenerateWithDefaultRenderer(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithLogger(quietLogger()))
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	out, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<!DOCTYPE html>", "ac-carousel", "data-swiper-options", "autoplay"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRunLoadsSourceAndReportsEvents(t *testing.T) {
	src := schema.SourceFromFile("deck.json")
	loader := &stubLoader{doc: schema.MustNewDocument(src, []byte(deckDoc))}
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer, orchestrator.WithLoader(loader))

	resp, err := orch.Run(context.Background(), orchestrator.Request{Source: src})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(loader.sources) != 1 || loader.sources[0] != src {
		t.Fatalf("expected loader to receive the request source")
	}
	want := cards.Events{{
		Kind:     cards.DisallowedType,
		Path:     "/body/1/pages/1",
		TypeName: "Media",
		Message:  `element type "Media" is not allowed here`,
	}}
	if diff := cmp.Diff(want, resp.Events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if resp.Renderer != "stub" || resp.ContentType != "text/plain" || string(resp.Output) != "rendered" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Version.Compare(version.V1_6) != 0 {
		t.Fatalf("expected document version 1.6, got %s", resp.Version)
	}
	carousels := cards.Carousels(renderer.root)
	if len(carousels) != 1 || carousels[0].ItemCount() != 2 {
		t.Fatalf("expected carousel with the two allowed pages")
	}
	if renderer.options.Logger == nil {
		t.Fatalf("renderer should receive the orchestrator logger")
	}
}

func TestRunFailOnEvents(t *testing.T) {
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer, orchestrator.WithFailOnEvents(true))
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	resp, err := orch.Run(context.Background(), orchestrator.Request{Document: &doc})
	var events cards.Events
	if !errors.As(err, &events) || len(events) != 1 {
		t.Fatalf("expected wrapped events error, got %v", err)
	}
	if resp == nil || resp.Root == nil {
		t.Fatalf("partial response should carry the parsed root")
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer must not run when events fail the request")
	}
}

func TestRunDerivesHostConfigFromTheme(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "slow",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				hostconfig.TokenMinAutoplayDelay: "4000",
				hostconfig.TokenCSSClassPrefix:   "acme-",
			},
			Variants: map[string]theme.Variant{
				"slow": {Tokens: map[string]string{hostconfig.TokenMinAutoplayDelay: "8000ms"}},
			},
		},
	}}
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer, orchestrator.WithThemeSelector(selector, "acme", "default"))
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	resp, err := orch.Run(context.Background(), orchestrator.Request{Document: &doc, ThemeVariant: "slow"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "slow"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
	if resp.HostConfig.MinAutoplayDelay() != 8000 || resp.HostConfig.CSSClassPrefix != "acme-" {
		t.Fatalf("unexpected host config %+v", resp.HostConfig)
	}

	carousel := cards.Carousels(resp.Root)[0]
	if got := carousel.RawTimer(); got == nil || *got != 8000 {
		t.Fatalf("timer should be clamped to the theme floor, got %v", got)
	}
	var belowFloor int
	for _, ev := range resp.Events {
		if ev.Kind == cards.BelowFloor {
			belowFloor++
		}
	}
	if belowFloor != 1 {
		t.Fatalf("expected one below floor event, got %d", belowFloor)
	}

	selector.err = errors.New("boom")
	if _, err := orch.Run(context.Background(), orchestrator.Request{Document: &doc}); err == nil {
		t.Fatalf("expected selector error")
	}
}

func TestRunAppliesPresetTransformer(t *testing.T) {
	files := fstest.MapFS{
		"preset.json": &fstest.MapFile{Data: []byte(`{"elements":{
			"title":{"text":"Renamed","wrap":true},
			"deck":{"timer":7000},
			"hero":{"isVisible":false}
		}}`)},
	}
	preset, err := orchestrator.NewJSONPresetTransformerFromFS(files, "preset.json")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	var seen cards.Element
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer, orchestrator.WithSchemaTransformer(orchestrator.Chain(
		preset,
		orchestrator.TransformerFunc(func(_ context.Context, root cards.Element) error {
			seen = root
			return nil
		}),
	)))
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if seen != renderer.root {
		t.Fatalf("transformers should see the rendered root")
	}

	card := renderer.root.(*cards.AdaptiveCard)
	title, _ := card.ItemAt(0)
	if tb := title.(*cards.TextBlock); tb.Text() != "Renamed" || !tb.Wrap() {
		t.Fatalf("text patch not applied: %q wrap=%v", tb.Text(), tb.Wrap())
	}
	carousel := cards.Carousels(card)[0]
	if got := carousel.RawTimer(); got == nil || *got != 7000 {
		t.Fatalf("timer patch not applied, got %v", got)
	}
	page, _ := carousel.PageAt(1)
	hero, _ := page.ItemAt(0)
	if hero.IsVisible() {
		t.Fatalf("hero should be hidden")
	}
}

func TestRunReportsEventsRecordedByTransformer(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetTransformer([]byte(`{"elements":{"deck":{"timer":1}}}`))
	if err != nil {
		t.Fatalf("new preset: %v", err)
	}
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer, orchestrator.WithSchemaTransformer(preset))
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	resp, err := orch.Run(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	carousel := cards.Carousels(resp.Root)[0]
	if got := carousel.RawTimer(); got == nil || *got != hostconfig.DefaultMinAutoplayDelay {
		t.Fatalf("preset timer should be clamped to the floor, got %v", got)
	}

	var kinds []cards.EventKind
	for _, ev := range resp.Events {
		kinds = append(kinds, ev.Kind)
	}
	want := []cards.EventKind{cards.DisallowedType, cards.BelowFloor}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFailOnEventsRecordedByTransformer(t *testing.T) {
	preset, err := orchestrator.NewJSONPresetTransformer([]byte(`{"elements":{"deck":{"timer":1}}}`))
	if err != nil {
		t.Fatalf("new preset: %v", err)
	}
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer,
		orchestrator.WithSchemaTransformer(preset),
		orchestrator.WithFailOnEvents(true),
	)
	clean := `{"type":"Carousel","id":"deck","pages":[{"items":[{"type":"TextBlock","text":"one"}]}]}`
	doc := schema.MustNewDocument(schema.SourceInline("clean"), []byte(clean))

	resp, err := orch.Run(context.Background(), orchestrator.Request{Document: &doc})
	var events cards.Events
	if !errors.As(err, &events) || len(events) != 1 || events[0].Kind != cards.BelowFloor {
		t.Fatalf("expected the transformer clamp to fail the run, got %v", err)
	}
	if resp == nil || len(resp.Events) != 1 {
		t.Fatalf("partial response should carry the clamp event, got %+v", resp)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer must not run when events fail the request")
	}
}

func TestPresetTransformerErrors(t *testing.T) {
	res, err := cards.Parse([]byte(deckDoc), cards.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		name string
		doc  string
		want string
	}{
		{name: "unknown id", doc: `{"elements":{"missing":{"isVisible":false}}}`, want: `element "missing" not found`},
		{name: "wrong property", doc: `{"elements":{"hero":{"text":"x"}}}`, want: `Image has no "text" property`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			preset, err := orchestrator.NewJSONPresetTransformer([]byte(tc.doc))
			if err != nil {
				t.Fatalf("new preset: %v", err)
			}
			err = preset.Transform(context.Background(), res.Root)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}

	if _, err := orchestrator.NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty preset")
	}
}

func TestRunErrors(t *testing.T) {
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer)
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	if _, err := orch.Run(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without source or document")
	}
	if _, err := orch.Run(context.Background(), orchestrator.Request{Document: &doc, Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	loader := &stubLoader{err: errors.New("offline")}
	orch = newOrchestrator(t, renderer, orchestrator.WithLoader(loader))
	if _, err := orch.Run(context.Background(), orchestrator.Request{Source: schema.SourceFromFile("x.json")}); err == nil || !strings.Contains(err.Error(), "offline") {
		t.Fatalf("expected loader error, got %v", err)
	}

	bad := schema.MustNewDocument(schema.SourceInline("bad"), []byte(`[1]`))
	if _, err := orch.Run(context.Background(), orchestrator.Request{Document: &bad}); !errors.Is(err, cards.ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
}

func TestRunPinnedVersionAndDesignMode(t *testing.T) {
	renderer := &stubRenderer{}
	orch := newOrchestrator(t, renderer, orchestrator.WithTargetVersion(version.V1_5))
	doc := schema.MustNewDocument(schema.SourceInline("deck"), []byte(deckDoc))

	resp, err := orch.Run(context.Background(), orchestrator.Request{
		Document:      &doc,
		RenderOptions: render.RenderOptions{DesignMode: true},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(cards.Carousels(resp.Root)) != 0 {
		t.Fatalf("carousel requires 1.6 and must be dropped at a pinned 1.5")
	}
	if !renderer.options.DesignMode {
		t.Fatalf("design mode should reach the renderer")
	}
}

func newOrchestrator(t *testing.T, renderer render.Renderer, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	base := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithLogger(quietLogger()),
	}
	return orchestrator.New(append(base, opts...)...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
