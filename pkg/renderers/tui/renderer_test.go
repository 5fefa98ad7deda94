package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/render"
)

type stubDriver struct {
	selectIdx    []int
	selectErr    error
	selectPos    int
	messages     []string
	infoMessages []string
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectErr != nil {
		return 0, s.selectErr
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

const deckDoc = `{"type":"AdaptiveCard","version":"1.6","body":[
	{"type":"TextBlock","text":"Welcome"},
	{"type":"Carousel","timer":6000,"pages":[
		{"items":[{"type":"TextBlock","text":"Hello <b>bold</b> &amp; more"}]},
		{"items":[{"type":"Image","url":"https://example.com/a.png","altText":"A"}]},
		{"isVisible":false,"items":[{"type":"TextBlock","text":"hidden page"}]}
	]}
]}`

func TestRendererTranscript(t *testing.T) {
	cases := []struct {
		name       string
		designMode bool
		want       string
	}{
		{
			name: "runtime",
			want: "Welcome\n" +
				"Carousel: 2 slides, autoplay every 6000ms\n" +
				"--- Slide 1/2\n" +
				"  Hello bold & more\n" +
				"--- Slide 2/2\n" +
				"  [image: A] https://example.com/a.png\n",
		},
		{
			name:       "design mode",
			designMode: true,
			want: "Welcome\n" +
				"Carousel: 3 slides\n" +
				"--- Slide 1/3\n" +
				"  Hello bold & more\n" +
				"--- Slide 2/3\n" +
				"  [image: A] https://example.com/a.png\n" +
				"--- Slide 3/3\n" +
				"  hidden page\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			renderer, err := New(WithPromptDriver(&stubDriver{}))
			if err != nil {
				t.Fatalf("new renderer: %v", err)
			}
			out := renderDoc(t, renderer, render.RenderOptions{DesignMode: tc.designMode})
			if diff := cmp.Diff(tc.want, out); diff != "" {
				t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRendererInteractivePager(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{choiceNext, choiceNext, choicePrev, choiceDone}}
	renderer, err := New(WithPromptDriver(driver), WithInteractive(true))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	renderDoc(t, renderer, render.RenderOptions{})

	wantInfo := []string{
		"--- Slide 1/2\n  Hello bold & more",
		"--- Slide 2/2\n  [image: A] https://example.com/a.png",
		"--- Slide 1/2\n  Hello bold & more",
		"--- Slide 2/2\n  [image: A] https://example.com/a.png",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("pager slides mismatch (-want +got):\n%s", diff)
	}
	wantPrompts := []string{"Slide 1/2", "Slide 2/2", "Slide 1/2", "Slide 2/2"}
	if diff := cmp.Diff(wantPrompts, driver.messages); diff != "" {
		t.Fatalf("pager prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererInteractiveAbort(t *testing.T) {
	driver := &stubDriver{selectErr: ErrAborted}
	renderer, err := New(WithPromptDriver(driver), WithInteractive(true))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	res := parseDoc(t)
	if _, err := renderer.Render(context.Background(), res.Root, render.RenderOptions{Logger: quietLogger()}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRendererJSONOutput(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatJSON))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
	out := renderDoc(t, renderer, render.RenderOptions{DesignMode: true})

	var got struct {
		Lines []string `json:"lines"`
		Decks []Deck   `json:"decks"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Deck{{
		Slides: [][]string{
			{"Hello bold & more"},
			{"[image: A] https://example.com/a.png"},
			{"hidden page"},
		},
		Loop: true,
	}}
	if diff := cmp.Diff(want, got.Decks); diff != "" {
		t.Fatalf("decks mismatch (-want +got):\n%s", diff)
	}
	if len(got.Lines) != 8 {
		t.Fatalf("expected 8 transcript lines, got %d", len(got.Lines))
	}
}

func TestRendererEmptyAndCancelled(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), nil, render.RenderOptions{})
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty transcript, got %q (%v)", out, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, cards.NewTextBlock("x"), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPagerWraps(t *testing.T) {
	p := &pager{size: 3, loop: true}
	p.prev()
	if p.index != 2 {
		t.Fatalf("looping prev should wrap to the end, got %d", p.index)
	}
	p.next()
	if p.index != 0 {
		t.Fatalf("looping next should wrap to the start, got %d", p.index)
	}

	p = &pager{size: 2}
	p.next()
	p.next()
	if p.index != 1 {
		t.Fatalf("non looping pager should stop at the end, got %d", p.index)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseDoc(t *testing.T) *cards.Result {
	t.Helper()
	res, err := cards.Parse([]byte(deckDoc), cards.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res
}

func renderDoc(t *testing.T, renderer *Renderer, opts render.RenderOptions) string {
	t.Helper()
	res := parseDoc(t)
	opts.Logger = quietLogger()
	out, err := renderer.Render(context.Background(), res.Root, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}
