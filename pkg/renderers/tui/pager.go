package tui

import (
	"github.com/goliatone/go-cardgen/pkg/slider"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

// Deck is a mounted carousel as the terminal sees it: one list of lines per
// rendered slide.
type Deck struct {
	Slides   [][]string `json:"slides"`
	Loop     bool       `json:"loop"`
	Autoplay float64    `json:"autoplayMs,omitempty"`
}

type mount struct {
	container  *visual.Node
	adornments slider.Adornments
	options    slider.Options
}

// deckWidget implements slider.Widget by remembering mounted containers so
// the text writer can page them instead of printing navigation handles.
type deckWidget struct {
	byNode map[*visual.Node]*mount
}

func newDeckWidget() *deckWidget {
	return &deckWidget{byNode: make(map[*visual.Node]*mount)}
}

func (w *deckWidget) Mount(container *visual.Node, adornments slider.Adornments, opts slider.Options) error {
	if container == nil {
		return slider.ErrNoContainer
	}
	w.byNode[container] = &mount{container: container, adornments: adornments, options: opts}
	return nil
}

// slides returns the slide nodes of a mounted container.
func (m *mount) slides() []*visual.Node {
	wrapper := m.container.Find(visual.WithClass("swiper-wrapper"))
	if wrapper == nil {
		return nil
	}
	return wrapper.Children
}

// pager tracks the current slide of an interactive session.
type pager struct {
	size  int
	index int
	loop  bool
}

func (p *pager) next() {
	switch {
	case p.index+1 < p.size:
		p.index++
	case p.loop:
		p.index = 0
	}
}

func (p *pager) prev() {
	switch {
	case p.index > 0:
		p.index--
	case p.loop:
		p.index = p.size - 1
	}
}
