package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryPhotoStore uploads photos to a Cloudinary folder and persists the
// secure delivery URL.
type CloudinaryPhotoStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryPhotoStore initializes a Cloudinary client from credentials.
func NewCloudinaryPhotoStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryPhotoStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryPhotoStore: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryPhotoStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryPhotoStore) Save(ctx context.Context, name string, content io.Reader) (StoredPhoto, error) {
	publicID := strings.TrimSuffix(name, path.Ext(name))
	result, err := s.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		PublicID: publicID,
		Folder:   s.folder,
	})
	if err != nil {
		return StoredPhoto{}, fmt.Errorf("CloudinaryPhotoStore: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return StoredPhoto{}, fmt.Errorf("CloudinaryPhotoStore: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return StoredPhoto{}, fmt.Errorf("CloudinaryPhotoStore: no public ID returned")
	}
	return StoredPhoto{Location: result.SecureURL, Key: result.PublicID}, nil
}

func (s *CloudinaryPhotoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: key}); err != nil {
		return fmt.Errorf("CloudinaryPhotoStore: failed to delete file: %w", err)
	}
	return nil
}
