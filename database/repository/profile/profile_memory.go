package profileRepo

import (
	"context"
	"sync"

	"profilewizard/models"
)

// MemoryProfileRepo keeps profiles in process memory. It backs the "memory"
// store backend and tests.
type MemoryProfileRepo struct {
	mu         sync.Mutex
	byUsername map[string]models.Profile
}

func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{byUsername: make(map[string]models.Profile)}
}

func (r *MemoryProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[profile.Username]; exists {
		return ErrDuplicateUsername
	}
	r.byUsername[profile.Username] = *profile
	return nil
}

func (r *MemoryProfileRepo) GetByUsername(_ context.Context, username string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Len returns the number of stored profiles.
func (r *MemoryProfileRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUsername)
}
