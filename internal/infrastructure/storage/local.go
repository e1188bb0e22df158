package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage writes uploads below Root, which the HTTP layer serves
// under /uploads.
type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	for _, dir := range []string{"images", "videos", "audio"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
	}
	return &LocalStorage{Root: root}, nil
}

func (s *LocalStorage) Save(ctx context.Context, field, originalName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := ObjectName(field, originalName)
	dst := filepath.Join(s.Root, filepath.FromSlash(key))

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", key, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", key, err)
	}
	return key, nil
}

// Remove deletes a stored upload. Missing files are not an error.
func (s *LocalStorage) Remove(_ context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("remove %q: invalid media path", key)
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
