package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalPhotoStore writes photos into a directory that the HTTP server also
// serves statically.
type LocalPhotoStore struct {
	dir string
}

// NewLocalPhotoStore creates dir if needed.
func NewLocalPhotoStore(dir string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("LocalPhotoStore: failed to create upload dir: %w", err)
	}
	return &LocalPhotoStore{dir: dir}, nil
}

// Dir returns the directory photos are written to.
func (s *LocalPhotoStore) Dir() string { return s.dir }

func (s *LocalPhotoStore) Save(ctx context.Context, name string, content io.Reader) (StoredPhoto, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return StoredPhoto{}, fmt.Errorf("LocalPhotoStore: invalid name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return StoredPhoto{}, err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return StoredPhoto{}, fmt.Errorf("LocalPhotoStore: failed to create file: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return StoredPhoto{}, fmt.Errorf("LocalPhotoStore: failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return StoredPhoto{}, fmt.Errorf("LocalPhotoStore: failed to close file: %w", err)
	}

	loc := filepath.ToSlash(path)
	return StoredPhoto{Location: loc, Key: name}, nil
}

func (s *LocalPhotoStore) Delete(_ context.Context, key string) error {
	if key != filepath.Base(key) {
		return fmt.Errorf("LocalPhotoStore: invalid key %q", key)
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("LocalPhotoStore: failed to delete file: %w", err)
	}
	return nil
}
