package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

const (
	choiceNext = iota
	choicePrev
	choiceDone
)

var pagerOptions = []string{"Next", "Previous", "Done"}

// Renderer implements render.Renderer for terminal sessions. Carousels are
// printed slide by slide and, in interactive mode, paged with the prompt
// driver.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	interactive  bool
	outputFormat OutputFormat
	theme        Theme
	policy       *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, text output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatText,
		theme:        defaultTheme(),
		policy:       bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render materializes root and returns its transcript.
func (r *Renderer) Render(ctx context.Context, root cards.Element, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	widget := newDeckWidget()
	node := cards.Render(root, opts.RenderContext(widget))

	var decks []*Deck
	w := &textWriter{widget: widget, theme: r.theme, policy: r.policy, decks: &decks}
	w.node(node, 0)

	if r.interactive {
		if r.driver == nil {
			return nil, ErrNoDriver
		}
		for _, deck := range decks {
			if err := r.page(ctx, deck); err != nil {
				return nil, err
			}
		}
	}
	return r.serialize(w.lines, decks)
}

func (r *Renderer) page(ctx context.Context, deck *Deck) error {
	if len(deck.Slides) == 0 {
		return nil
	}
	p := &pager{size: len(deck.Slides), loop: deck.Loop}
	for {
		if err := r.driver.Info(ctx, r.slideText(deck, p.index)); err != nil {
			return err
		}
		if p.size == 1 {
			return nil
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Slide %d/%d", p.index+1, p.size),
			Options: pagerOptions,
		})
		if err != nil {
			return err
		}
		switch choice {
		case choiceNext:
			p.next()
		case choicePrev:
			p.prev()
		default:
			return nil
		}
	}
}

func (r *Renderer) slideText(deck *Deck, index int) string {
	var b strings.Builder
	b.WriteString(r.theme.SlidePrefix + slideLabel(index, len(deck.Slides)))
	for _, line := range deck.Slides[index] {
		b.WriteString("\n" + r.theme.Indent + line)
	}
	return b.String()
}

func (r *Renderer) serialize(lines []string, decks []*Deck) ([]byte, error) {
	if r.outputFormat == OutputFormatJSON {
		if lines == nil {
			lines = []string{}
		}
		if decks == nil {
			decks = []*Deck{}
		}
		data, err := json.Marshal(map[string]any{"lines": lines, "decks": decks})
		if err != nil {
			return nil, fmt.Errorf("tui: encode transcript: %w", err)
		}
		return data, nil
	}
	if len(lines) == 0 {
		return []byte{}, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func slideLabel(index, size int) string {
	return fmt.Sprintf("Slide %d/%d", index+1, size)
}

// textWriter flattens a visual tree into indented lines.
type textWriter struct {
	widget *deckWidget
	theme  Theme
	policy *bluemonday.Policy
	decks  *[]*Deck
	lines  []string
}

func (w *textWriter) line(depth int, text string) {
	w.lines = append(w.lines, strings.Repeat(w.theme.Indent, depth)+text)
}

func (w *textWriter) node(n *visual.Node, depth int) {
	if n == nil {
		return
	}
	if m, ok := w.widget.byNode[n]; ok {
		w.deck(m, depth)
		return
	}
	switch strings.ToLower(n.Tag) {
	case "img":
		w.line(depth, w.image(n))
		return
	case "button":
		return
	}
	for _, text := range w.text(n) {
		w.line(depth, text)
	}
	for _, child := range n.Children {
		w.node(child, depth)
	}
}

func (w *textWriter) deck(m *mount, depth int) {
	slides := m.slides()
	deck := &Deck{Loop: m.options.Loop}
	if m.options.Autoplay != nil {
		deck.Autoplay = m.options.Autoplay.Delay
	}
	*w.decks = append(*w.decks, deck)

	header := fmt.Sprintf("Carousel: %d slides", len(slides))
	if deck.Autoplay > 0 {
		header += ", autoplay every " + strconv.FormatFloat(deck.Autoplay, 'f', -1, 64) + "ms"
	}
	w.line(depth, header)

	for i, slide := range slides {
		sub := &textWriter{widget: w.widget, theme: w.theme, policy: w.policy, decks: w.decks}
		sub.node(slide, 0)
		if sub.lines == nil {
			sub.lines = []string{}
		}
		deck.Slides = append(deck.Slides, sub.lines)

		w.line(depth, w.theme.SlidePrefix+slideLabel(i, len(slides)))
		for _, line := range sub.lines {
			w.line(depth+1, line)
		}
	}
}

func (w *textWriter) text(n *visual.Node) []string {
	var parts []string
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	if n.Markup != "" {
		parts = append(parts, html.UnescapeString(w.policy.Sanitize(n.Markup)))
	}
	var out []string
	for _, part := range parts {
		for _, line := range strings.Split(part, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

func (w *textWriter) image(n *visual.Node) string {
	label := w.theme.ImagePrefix
	if alt := strings.TrimSpace(n.Attr("alt")); alt != "" {
		label += ": " + alt
	}
	return label + "] " + n.Attr("src")
}
