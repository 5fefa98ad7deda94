package schema

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// Document wraps a raw card payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, fmt.Errorf("schema: document %s is empty", src.Location())
	}
	return Document{source: src, raw: bytes.Clone(raw)}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the document origin.
func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return bytes.Clone(d.raw) }

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// IsZero reports whether the document was never populated.
func (d Document) IsZero() bool { return d.source == nil && len(d.raw) == 0 }

// Valid reports whether the payload is well-formed JSON.
func (d Document) Valid() bool { return json.Valid(d.raw) }
