package cardgen

import (
	internalLoader "github.com/goliatone/go-cardgen/internal/loader"
	"github.com/goliatone/go-cardgen/pkg/cards"
	"github.com/goliatone/go-cardgen/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// Parse decodes a card document with the process-wide element registry.
func Parse(data []byte, options ...cards.ParseOption) (*cards.Result, error) {
	return cards.Parse(data, options...)
}
