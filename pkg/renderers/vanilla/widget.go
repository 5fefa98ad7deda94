package vanilla

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/goliatone/go-cardgen/pkg/slider"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

// OptionsAttr is the container attribute carrying the Swiper options.
const OptionsAttr = "data-swiper-options"

// SwiperOptions is the JSON shape handed to the Swiper runtime.
type SwiperOptions struct {
	Loop       bool             `json:"loop"`
	Pagination SwiperPagination `json:"pagination"`
	Navigation SwiperNavigation `json:"navigation"`
	A11y       SwiperToggle     `json:"a11y"`
	Keyboard   SwiperKeyboard   `json:"keyboard"`
	Autoplay   *slider.Autoplay `json:"autoplay,omitempty"`
}

type SwiperPagination struct {
	El        string `json:"el"`
	Clickable bool   `json:"clickable"`
}

type SwiperNavigation struct {
	PrevEl string `json:"prevEl"`
	NextEl string `json:"nextEl"`
}

type SwiperToggle struct {
	Enabled bool `json:"enabled"`
}

type SwiperKeyboard struct {
	Enabled        bool `json:"enabled"`
	OnlyInViewport bool `json:"onlyInViewport"`
}

// Widget mounts sliders by writing their Swiper options onto the container
// node. The embedded runtime script reads the attribute in the browser.
type Widget struct {
	newID  func() string
	mounts []string
}

// NewWidget creates a widget. A nil idgen falls back to random UUIDs.
func NewWidget(idgen func() string) *Widget {
	if idgen == nil {
		idgen = func() string { return uuid.NewString() }
	}
	return &Widget{newID: idgen}
}

// Mount implements slider.Widget.
func (w *Widget) Mount(container *visual.Node, adornments slider.Adornments, opts slider.Options) error {
	if container == nil {
		return slider.ErrNoContainer
	}
	if container.ID == "" {
		container.ID = "slider-" + w.newID()
	}
	base := container.ID

	assign := func(node *visual.Node, part string) string {
		if node == nil {
			return ""
		}
		if node.ID == "" {
			node.ID = sliderPartID(base, part)
		}
		return "#" + node.ID
	}

	config := SwiperOptions{
		Loop: opts.Loop,
		Pagination: SwiperPagination{
			El:        assign(adornments.Pagination, "pagination"),
			Clickable: true,
		},
		Navigation: SwiperNavigation{
			PrevEl: assign(adornments.Prev, "prev"),
			NextEl: assign(adornments.Next, "next"),
		},
		A11y:     SwiperToggle{Enabled: opts.A11y},
		Keyboard: SwiperKeyboard{Enabled: opts.Keyboard, OnlyInViewport: true},
		Autoplay: opts.Autoplay,
	}
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("vanilla: encode slider options: %w", err)
	}
	container.SetAttr(OptionsAttr, string(data))
	w.mounts = append(w.mounts, base)
	return nil
}

// Mounted returns the container ids mounted so far.
func (w *Widget) Mounted() []string {
	return append([]string(nil), w.mounts...)
}
