package profile

import (
	"context"

	profileRepo "cupid/database/repository/profile"
	"cupid/models"
	"cupid/services/media"
	"cupid/services/navigation"
)

// SessionService owns the authenticated user's profile record: loading it,
// overwriting it on save, and keeping the navigation mode in sync with the
// completeness invariant.
type SessionService interface {
	// Load fetches the profile and touches its last-active timestamp.
	Load(userID string) (*models.UserProfile, error)
	// Save overwrites the full profile document (last-writer-wins).
	Save(p *models.UserProfile) error
	// UpdateProfile applies the edit-profile flow's partial changes.
	UpdateProfile(userID string, req models.UserProfileUpdateRequest) (*models.UserProfile, error)
	// AddPhoto uploads one more photo and appends it to the ordered list.
	AddPhoto(ctx context.Context, userID string, photo []byte) (*models.UserProfile, error)
	// RemovePhoto removes a photo URL from the ordered list.
	RemovePhoto(userID string, photoURL string) (*models.UserProfile, error)
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Repo  profileRepo.ProfileRepository
	Media media.Uploader
	Nav   *navigation.Store
}
