package profile

import (
	"context"
	"time"

	profileRepo "profilewizard/database/repository/profile"
	"profilewizard/models"
	"profilewizard/services/storage"
	"profilewizard/services/tasks"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultMaxPhotoBytes is the photo size limit when none is configured.
const DefaultMaxPhotoBytes int64 = 2 * 1024 * 1024

// ProfileService accepts completed wizard submissions.
type ProfileService interface {
	// Submit validates and normalizes sub, stores its photo if any and
	// persists a new profile.
	Submit(ctx context.Context, sub models.ProfileSubmission) (*models.Profile, error)
	// UploadPhoto stores a standalone photo and returns its location.
	UploadPhoto(ctx context.Context, blob *models.PhotoBlob) (string, error)
}

// DefaultProfileService is the production implementation. It keeps no state
// between calls.
type DefaultProfileService struct {
	Repo          profileRepo.ProfileRepository
	Photos        storage.PhotoStore
	Tasks         tasks.Enqueuer
	Logger        *zap.Logger
	MaxPhotoBytes int64
	HashCost      int
	Now           func() time.Time
}

// NewProfileService wires a service with default limits.
func NewProfileService(repo profileRepo.ProfileRepository, photos storage.PhotoStore, enq tasks.Enqueuer, logger *zap.Logger) *DefaultProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if enq == nil {
		enq = tasks.NoopEnqueuer{}
	}
	return &DefaultProfileService{
		Repo:          repo,
		Photos:        photos,
		Tasks:         enq,
		Logger:        logger,
		MaxPhotoBytes: DefaultMaxPhotoBytes,
		HashCost:      bcrypt.DefaultCost,
		Now:           time.Now,
	}
}
