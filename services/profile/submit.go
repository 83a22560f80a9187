package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	profileRepo "profilewizard/database/repository/profile"
	"profilewizard/models"
	"profilewizard/services/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Submit creates one profile per successful call. The photo is written before
// the record; if the insert fails the photo is removed again.
func (s *DefaultProfileService) Submit(ctx context.Context, sub models.ProfileSubmission) (*models.Profile, error) {
	if err := validate(&sub); err != nil {
		return nil, err
	}

	var photo *storage.StoredPhoto
	if sub.Photo != nil {
		stored, err := s.storePhoto(ctx, sub.Photo)
		if err != nil {
			return nil, err
		}
		photo = &stored
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(sub.NewPassword), s.HashCost)
	if err != nil {
		s.discardPhoto(photo)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("newPassword must be at most 72 bytes")
		}
		s.Logger.Error("Submit: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to save profile, please try again")
	}

	p := &models.Profile{
		ID:               uuid.New().String(),
		Username:         sub.Username,
		DateOfBirth:      sub.DateOfBirth,
		PasswordHash:     string(hash),
		Profession:       models.Profession(sub.Profession),
		CompanyName:      companyNameFor(sub.Profession, sub.CompanyName),
		AddressLine1:     sub.AddressLine1,
		Country:          sub.Country,
		State:            sub.State,
		City:             sub.City,
		SubscriptionPlan: models.SubscriptionPlan(sub.SubscriptionPlan),
		Newsletter:       parseNewsletter(sub.Newsletter),
		CreatedAt:        s.Now().UTC(),
	}
	if photo != nil {
		p.ProfilePhoto = photo.Location
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		s.discardPhoto(photo)
		if errors.Is(err, profileRepo.ErrDuplicateUsername) {
			s.Logger.Info("Submit: duplicate username", zap.String("username", p.Username))
			return nil, err
		}
		s.Logger.Error("Submit: failed to create profile", zap.Error(err))
		return nil, err
	}
	s.Logger.Info("Submit: profile created", zap.String("id", p.ID), zap.String("username", p.Username))

	if p.Newsletter {
		payload := models.NewsletterPayload{ProfileID: p.ID, Username: p.Username, Plan: string(p.SubscriptionPlan)}
		if err := s.Tasks.EnqueueNewsletter(ctx, payload); err != nil {
			s.Logger.Warn("Submit: failed to enqueue newsletter enrollment", zap.String("id", p.ID), zap.Error(err))
		}
	}
	return p, nil
}

// UploadPhoto stores a photo on its own, outside of a profile submission.
func (s *DefaultProfileService) UploadPhoto(ctx context.Context, blob *models.PhotoBlob) (string, error) {
	if blob == nil {
		return "", ErrNoFile
	}
	stored, err := s.storePhoto(ctx, blob)
	if err != nil {
		return "", err
	}
	return stored.Location, nil
}

func (s *DefaultProfileService) storePhoto(ctx context.Context, blob *models.PhotoBlob) (storage.StoredPhoto, error) {
	if err := checkPhoto(blob, s.MaxPhotoBytes); err != nil {
		return storage.StoredPhoto{}, err
	}
	data, err := readPhoto(blob, s.MaxPhotoBytes)
	if err != nil {
		return storage.StoredPhoto{}, err
	}

	name := photoName(s.Now(), blob.Filename)
	stored, err := s.Photos.Save(ctx, name, bytes.NewReader(data))
	if err != nil {
		s.Logger.Error("failed to store photo", zap.String("name", name), zap.Error(err))
		return storage.StoredPhoto{}, fmt.Errorf("failed to store photo: %w", err)
	}
	return stored, nil
}

// discardPhoto removes a photo whose profile was never persisted.
func (s *DefaultProfileService) discardPhoto(photo *storage.StoredPhoto) {
	if photo == nil {
		return
	}
	if err := s.Photos.Delete(context.Background(), photo.Key); err != nil {
		s.Logger.Warn("failed to remove orphaned photo", zap.String("key", photo.Key), zap.Error(err))
	}
}
