package storage

import (
	"context"
	"io"
)

// StoredPhoto identifies a saved photo. Location is what gets persisted on the
// profile; Key is what Delete needs.
type StoredPhoto struct {
	Location string
	Key      string
}

// PhotoStore persists accepted profile photos.
type PhotoStore interface {
	// Save stores content under name. Names are generated by the caller and
	// are unique per request.
	Save(ctx context.Context, name string, content io.Reader) (StoredPhoto, error)
	// Delete removes a previously saved photo.
	Delete(ctx context.Context, key string) error
}
