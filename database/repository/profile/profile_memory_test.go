package profileRepo

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"profilewizard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_CreateAndGet(t *testing.T) {
	repo := NewMemoryProfileRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Profile{ID: "1", Username: "alice"}))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_DuplicateUsername(t *testing.T) {
	repo := NewMemoryProfileRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Profile{ID: "1", Username: "alice"}))
	err := repo.Create(ctx, &models.Profile{ID: "2", Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryRepo_ConcurrentDuplicates(t *testing.T) {
	repo := NewMemoryProfileRepo()
	const n = 32

	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := repo.Create(context.Background(), &models.Profile{Username: "race"})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, ErrDuplicateUsername):
				dup.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), dup.Load())
}
