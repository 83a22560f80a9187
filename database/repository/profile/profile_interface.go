package profileRepo

import (
	"context"
	"errors"

	"profilewizard/models"
)

// ErrDuplicateUsername is returned by Create when another profile already uses the username.
var ErrDuplicateUsername = errors.New("a profile with this username already exists")

// ErrNotFound is returned by lookups that match no profile.
var ErrNotFound = errors.New("profile not found")

// ProfileRepository defines methods for profile data access. Profiles are
// immutable once created, so there is no update or delete.
type ProfileRepository interface {
	// Create inserts a new profile. It must be safe for concurrent use and
	// return ErrDuplicateUsername for every racing insert but one.
	Create(ctx context.Context, profile *models.Profile) error
	// GetByUsername retrieves a profile by its unique username.
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
}
