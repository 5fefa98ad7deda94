package loader

import (
	"context"
	"fmt"
	"io"
)

func loadStdin(ctx context.Context, r io.Reader, name string, limit int64) ([]byte, error) {
	if name != "stdin" {
		return nil, fmt.Errorf("inline source %q has no payload", name)
	}
	if r == nil {
		return nil, fmt.Errorf("stdin reader is not configured")
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return readLimited(r, limit)
}
