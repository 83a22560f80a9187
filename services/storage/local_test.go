package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPhotoStore_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalPhotoStore(dir)
	require.NoError(t, err)

	photo, err := store.Save(context.Background(), "123-abc.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "123-abc.png", photo.Key)
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "123-abc.png")), photo.Location)

	data, err := os.ReadFile(filepath.Join(dir, "123-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), photo.Key))
	_, err = os.Stat(filepath.Join(dir, "123-abc.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(context.Background(), photo.Key))
}

func TestLocalPhotoStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalPhotoStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../evil.png", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Error(t, store.Delete(context.Background(), "../evil.png"))
}

func TestLocalPhotoStore_NoOverwrite(t *testing.T) {
	store, err := NewLocalPhotoStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "same.jpg", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "same.jpg", strings.NewReader("second"))
	assert.Error(t, err)
}

func TestNewCloudinaryPhotoStore_RequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryPhotoStore("", "key", "secret", "profiles")
	assert.Error(t, err)
}
