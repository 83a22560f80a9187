package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"profilewizard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProfileRepo implements ProfileRepository using MongoDB. Username
// uniqueness is enforced by a unique index, so concurrent inserts need no
// coordination here.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo returns a repository over the "users" collection of db
// and makes sure its indexes exist.
func NewMongoProfileRepo(ctx context.Context, db *mongo.Database) (*MongoProfileRepo, error) {
	repo := &MongoProfileRepo{coll: db.Collection("users")}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// Create inserts a new profile document.
func (r *MongoProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByUsername retrieves a profile by username.
func (r *MongoProfileRepo) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile %s: %w", username, err)
	}
	return &p, nil
}
