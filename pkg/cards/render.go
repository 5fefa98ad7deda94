package cards

import (
	"log/slog"
	"slices"

	"github.com/goliatone/go-cardgen/pkg/slider"
)

// Policy decides which elements may render in a context. An empty Allow list
// permits every type not in Deny.
type Policy struct {
	Allow  []string
	Deny   []string
	Filter func(Element) bool
}

// Permits reports whether el may render under p.
func (p Policy) Permits(el Element) bool {
	if el == nil {
		return false
	}
	name := el.JSONTypeName()
	if slices.Contains(p.Deny, name) {
		return false
	}
	if len(p.Allow) > 0 && !slices.Contains(p.Allow, name) {
		return false
	}
	if p.Filter != nil && !p.Filter(el) {
		return false
	}
	return true
}

// RenderContext carries the inputs of one render pass.
type RenderContext struct {
	DesignMode bool
	Slider     slider.Widget
	Policy     Policy
	Logger     *slog.Logger
}

// Permits applies the context policy. A nil context permits everything.
func (rc *RenderContext) Permits(el Element) bool {
	if rc == nil {
		return el != nil
	}
	return rc.Policy.Permits(el)
}

func (rc *RenderContext) logger() *slog.Logger {
	if rc != nil && rc.Logger != nil {
		return rc.Logger
	}
	return slog.Default()
}
