// Package loader implements schema.Loader for files, fs.FS entries, HTTP URLs
// and stdin.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-cardgen/pkg/schema"
)

var (
	// ErrHTTPDisabled is returned for URL sources when no client is configured.
	ErrHTTPDisabled = errors.New("loader: http support disabled")
	// ErrTooLarge is returned when a payload exceeds the configured limit.
	ErrTooLarge = errors.New("loader: document exceeds size limit")
)

// Loader delegates to file, fs.FS, HTTP or stdin strategies by source kind.
type Loader struct {
	fs       fs.FS
	http     *http.Client
	timeout  time.Duration
	maxBytes int64
	stdin    io.Reader
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options schema.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	maxBytes := options.MaxBytes
	if maxBytes <= 0 {
		maxBytes = schema.DefaultMaxBytes
	}

	return &Loader{
		fs:       options.FileSystem,
		http:     client,
		timeout:  timeout,
		maxBytes: maxBytes,
		stdin:    options.Stdin,
	}
}

// Load fetches src and wraps the payload in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location(), l.maxBytes)
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location(), l.maxBytes)
	case schema.SourceKindURL:
		if l.http == nil {
			return schema.Document{}, ErrHTTPDisabled
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout, l.maxBytes)
	case schema.SourceKindInline:
		data, err = loadStdin(ctx, l.stdin, src.Location(), l.maxBytes)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, fmt.Errorf("loader: load %s: %w", src.Location(), err)
	}

	return schema.NewDocument(src, data)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
