// Package schema describes where card documents come from and the raw payload
// loaders hand to the parser.
package schema

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

// Source identifies the origin of a card document.
type Source interface {
	Kind() SourceKind
	Location() string
}

type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// SourceFromFile points at a document on disk.
func SourceFromFile(path string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(path)}
}

// SourceFromFS points at an entry inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: strings.TrimPrefix(name, "/")}
}

// SourceFromURL parses raw as an absolute URL.
func SourceFromURL(raw string) (Source, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("schema: empty URL source")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("schema: unsupported URL scheme %q", u.Scheme)
	}
	return source{kind: SourceKindURL, location: raw}, nil
}

// MustSourceFromURL panics on invalid input. Intended for tests and constants.
func MustSourceFromURL(raw string) Source {
	src, err := SourceFromURL(raw)
	if err != nil {
		panic(err)
	}
	return src
}

// SourceInline names a payload the caller already holds (stdin, tests).
func SourceInline(name string) Source {
	if strings.TrimSpace(name) == "" {
		name = "inline"
	}
	return source{kind: SourceKindInline, location: name}
}

// ParseLocation picks a source kind from a command line style location:
// http(s) URLs, "-" for stdin, anything else is a file path.
func ParseLocation(location string) (Source, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("schema: location is required")
	case location == "-":
		return SourceInline("stdin"), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return SourceFromURL(location)
	default:
		return SourceFromFile(location), nil
	}
}
