package files

import (
	"context"
	"io"
)

// Store persists uploaded documents and returns a URL the app can serve them from.
type Store interface {
	Save(ctx context.Context, relPath string, src io.Reader) (string, error)
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	Delete(ctx context.Context, relPath string) error
}
