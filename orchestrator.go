package cardgen

import (
	"context"

	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/schema"
)

// RenderOptions describes per-request settings such as design mode and the
// render policy.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers that only import the root
// package.
type Request = orchestrator.Request

// Response aliases orchestrator.Response.
type Response = orchestrator.Response

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the card document at source and renders it using the
// named renderer. It is the simplest entry point for callers that just want
// HTML output.
func GenerateHTML(ctx context.Context, source schema.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDocument renders a pre-loaded document, bypassing the loader
// stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc schema.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
