package ports

import (
	"context"
	"io"
)

// MediaStorage persists uploaded files and hands back the relative path
// that gets stored on the owning row.
type MediaStorage interface {
	Save(ctx context.Context, field, originalName string, r io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}
