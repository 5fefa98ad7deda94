package render

import (
	"log/slog"

	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/slider"
)

// RenderOptions carry per-request settings shared by every renderer.
type RenderOptions struct {
	// DesignMode suppresses runtime behaviour such as carousel autoplay and
	// keeps empty containers visible.
	DesignMode bool
	// Policy limits which element types may render.
	Policy cards.Policy
	// Title labels the rendered document where the format has a place for it.
	Title string
	// Logger receives render diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// RenderContext builds the element render context for a pass driven by
// widget.
func (o RenderOptions) RenderContext(widget slider.Widget) *cards.RenderContext {
	return &cards.RenderContext{
		DesignMode: o.DesignMode,
		Slider:     widget,
		Policy:     o.Policy,
		Logger:     o.Logger,
	}
}
