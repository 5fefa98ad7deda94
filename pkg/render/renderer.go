package render

import (
	"context"

	"github.com/goliatone/go-cardgen/pkg/cards"
)

// Renderer turns a parsed element tree into bytes (HTML, terminal text).
// Renderers run the materialization pass themselves so they can supply their
// own slider widget.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root cards.Element, options RenderOptions) ([]byte, error)
}
