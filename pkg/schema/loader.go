package schema

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches card documents. The implementation lives in internal/loader.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources. HTTP stays disabled
// unless a client or the fallback is configured.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	// MaxBytes caps payload size; zero means DefaultMaxBytes.
	MaxBytes int64
	// Stdin backs SourceKindInline sources named "stdin".
	Stdin io.Reader
}

// DefaultMaxBytes caps remote and local payloads.
const DefaultMaxBytes = 4 << 20

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects the fs.FS used for SourceKindFS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects the client used for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithMaxBytes caps the payload size.
func WithMaxBytes(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxBytes = limit
	}
}

// WithStdin sets the reader consumed by SourceInline("stdin").
func WithStdin(r io.Reader) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Stdin = r
	}
}

// NewLoaderOptions applies options in order.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	return cfg
}
