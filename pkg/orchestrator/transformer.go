package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-cardgen/pkg/cards"
)

// Transformer mutates the parsed element tree before rendering.
// Implementations can hide elements, rewrite text, or retune carousels.
type Transformer interface {
	Transform(ctx context.Context, root cards.Element) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, root cards.Element) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, root cards.Element) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, root)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, root cards.Element) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, root); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative patches, keyed by element id,
// loaded from a JSON document:
//
//	{
//	  "elements": {
//	    "deck":  {"timer": 8000},
//	    "title": {"text": "Custom Title", "wrap": true},
//	    "hero":  {"url": "https://example.com/hero.png", "isVisible": false}
//	  }
//	}
//
// Timers go through the carousel write path, so values below the host floor
// are clamped and reported.
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Elements map[string]jsonElementPatch `json:"elements"`
}

type jsonElementPatch struct {
	IsVisible *bool    `json:"isVisible"`
	Text      *string  `json:"text"`
	Wrap      *bool    `json:"wrap"`
	URL       *string  `json:"url"`
	AltText   *string  `json:"altText"`
	Timer     *float64 `json:"timer"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches onto the elements under root. Ids are
// applied in sorted order so failures are deterministic.
func (t *JSONPresetTransformer) Transform(ctx context.Context, root cards.Element) error {
	if root == nil {
		return errors.New("json preset transformer: root element is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	byID := indexByID(root)
	ids := make([]string, 0, len(t.document.Elements))
	for id := range t.document.Elements {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		el, ok := byID[id]
		if !ok {
			return fmt.Errorf("json preset transformer: element %q not found", id)
		}
		if err := applyElementPatch(el, t.document.Elements[id]); err != nil {
			return fmt.Errorf("json preset transformer: element %q: %w", id, err)
		}
	}
	return nil
}

func applyElementPatch(el cards.Element, patch jsonElementPatch) error {
	var allowed []string
	switch el.(type) {
	case *cards.TextBlock:
		allowed = []string{"text", "wrap"}
	case *cards.Image:
		allowed = []string{"url", "altText"}
	case *cards.Carousel:
		allowed = []string{"timer"}
	}
	typed := patch.typed()
	for _, name := range slices.Sorted(maps.Keys(typed)) {
		if typed[name] && !slices.Contains(allowed, name) {
			return fmt.Errorf("%s has no %q property", el.JSONTypeName(), name)
		}
	}

	if patch.IsVisible != nil {
		el.Base().SetVisible(*patch.IsVisible)
	}
	switch v := el.(type) {
	case *cards.TextBlock:
		if patch.Text != nil {
			v.SetText(*patch.Text)
		}
		if patch.Wrap != nil {
			v.SetWrap(*patch.Wrap)
		}
	case *cards.Image:
		if patch.URL != nil {
			v.SetURL(*patch.URL)
		}
		if patch.AltText != nil {
			v.SetAltText(*patch.AltText)
		}
	case *cards.Carousel:
		if patch.Timer != nil {
			v.SetTimer(patch.Timer)
		}
	}
	return nil
}

// typed reports which type specific members the patch sets.
func (p jsonElementPatch) typed() map[string]bool {
	return map[string]bool{
		"text":    p.Text != nil,
		"wrap":    p.Wrap != nil,
		"url":     p.URL != nil,
		"altText": p.AltText != nil,
		"timer":   p.Timer != nil,
	}
}

func indexByID(root cards.Element) map[string]cards.Element {
	out := make(map[string]cards.Element)
	cards.Walk(root, func(el cards.Element) bool {
		if id := el.ID(); id != "" {
			if _, exists := out[id]; !exists {
				out[id] = el
			}
		}
		return true
	})
	return out
}
