package profileRepo

import (
	"cupid/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfileRepository defines methods for profile document access. Set is a
// full-document overwrite (last-writer-wins); UpdateFields is a partial $set.
type ProfileRepository interface {
	// GetByID retrieves a profile by its unique ID.
	GetByID(id string) (*models.UserProfile, error)
	// GetByEmail retrieves a profile by email address.
	GetByEmail(email string) (*models.UserProfile, error)
	// Create inserts a new profile document.
	Create(profile *models.UserProfile) error
	// Set overwrites the full profile document.
	Set(profile *models.UserProfile) error
	// UpdateFields applies a partial update to the named fields.
	UpdateFields(id string, fields map[string]any) error
	// Delete removes a profile document by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a profile by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.UserProfile, error)
}
