package profile

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"profilewizard/models"

	"github.com/google/uuid"
)

var allowedPhotoExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// checkPhoto applies the acceptance policy to the declared metadata. Both the
// extension and the content type must be on the allow-list.
func checkPhoto(blob *models.PhotoBlob, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(blob.Filename))
	mediaType, _, err := mime.ParseMediaType(blob.ContentType)
	if err != nil {
		mediaType = ""
	}
	if !allowedPhotoExt[ext] || !allowedPhotoTypes[strings.ToLower(mediaType)] {
		return ErrPhotoType
	}
	if blob.Size > maxBytes {
		return ErrPhotoTooLarge
	}
	return nil
}

// readPhoto buffers the photo body, enforcing maxBytes on what is actually read.
func readPhoto(blob *models.PhotoBlob, maxBytes int64) ([]byte, error) {
	if blob.Content == nil {
		return nil, ErrNoFile
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(blob.Content, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	if n > maxBytes {
		return nil, ErrPhotoTooLarge
	}
	return buf.Bytes(), nil
}

// photoName derives a unique stored name from the acceptance time and the
// original extension.
func photoName(acceptedAt time.Time, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", acceptedAt.UnixMilli(), uuid.NewString()[:8], ext)
}
