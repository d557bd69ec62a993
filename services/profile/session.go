package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cupid/models"
	"cupid/utils"
	"cupid/validation"

	"go.uber.org/zap"
)

// ErrProfileNotFound is returned when no document exists for the user.
var ErrProfileNotFound = errors.New("profile not found")

// ErrPhotoLimitReached is returned when the photo list is already full.
var ErrPhotoLimitReached = fmt.Errorf("a profile can hold at most %d photos", models.MaxProfilePhotos)

// Validation failures. These are safe to show to the user verbatim;
// anything else the service returns is a backend failure and must be
// hidden behind a generic message.
var (
	ErrNameTooShort    = errors.New("display name is too short")
	ErrBioTooShort     = errors.New("bio must be at least 10 characters")
	ErrTooFewInterests = errors.New("pick at least 3 interests")
	ErrNoInterestedIn  = errors.New("pick at least one option")
	ErrUnknownGender   = errors.New("unknown gender option")
	ErrInvalidAgeRange = errors.New("the age range must sit between 18 and 80")
)

// Load fetches the profile and best-effort touches its last-active timestamp.
// A failed touch is logged and never surfaces to the caller.
func (s *DefaultSessionService) Load(userID string) (*models.UserProfile, error) {
	logger := utils.GetLogger().Sugar()

	p, err := s.Repo.GetByID(userID)
	if err != nil {
		logger.Errorf("Failed to fetch profile %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	now := time.Now()
	if err := s.Repo.UpdateFields(userID, map[string]any{"lastActiveAt": now}); err != nil {
		logger.Warnf("Failed to touch lastActiveAt for %s: %v", userID, err)
	} else {
		p.LastActiveAt = now
	}
	return p, nil
}

// Save overwrites the full profile document. The stored document always
// reflects the most recent Save, field by field.
func (s *DefaultSessionService) Save(p *models.UserProfile) error {
	if p == nil || p.ID == "" {
		return errors.New("profile is missing an ID")
	}
	if !validation.AgeRangeValid(p.AgeRange.Min, p.AgeRange.Max) {
		return fmt.Errorf("%w: %d-%d", ErrInvalidAgeRange, p.AgeRange.Min, p.AgeRange.Max)
	}
	if len(p.Photos) > models.MaxProfilePhotos {
		return ErrPhotoLimitReached
	}

	p.UpdatedAt = time.Now()
	if err := s.Repo.Set(p); err != nil {
		utils.GetLogger().Error("Failed to save profile", zap.String("userID", p.ID), zap.Error(err))
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if s.Nav != nil {
		s.Nav.SetFromProfile(p.ID, p)
	}
	return nil
}

// UpdateProfile applies a partial edit. Zero-valued request fields are left
// unchanged; provided ones are validated before anything is written.
func (s *DefaultSessionService) UpdateProfile(userID string, req models.UserProfileUpdateRequest) (*models.UserProfile, error) {
	fields := make(map[string]any)

	if req.DisplayName != "" {
		if !validation.NameValid(req.DisplayName) {
			return nil, ErrNameTooShort
		}
		fields["displayName"] = req.DisplayName
	}
	if req.Bio != "" {
		if !validation.BioValid(req.Bio) {
			return nil, ErrBioTooShort
		}
		fields["bio"] = req.Bio
	}
	if req.Interests != nil {
		if !validation.InterestsValid(req.Interests) {
			return nil, ErrTooFewInterests
		}
		fields["interests"] = req.Interests
	}
	if req.InterestedIn != nil {
		if len(req.InterestedIn) == 0 {
			return nil, ErrNoInterestedIn
		}
		for _, g := range req.InterestedIn {
			if !models.ValidGender(g) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGender, g)
			}
		}
		fields["interestedIn"] = req.InterestedIn
	}
	if req.Occupation != "" {
		fields["occupation"] = req.Occupation
	}
	if req.University != "" {
		fields["university"] = req.University
	}
	if req.Location != nil {
		fields["location"] = req.Location
	}
	if req.MaxDistanceKm > 0 {
		fields["maxDistanceKm"] = req.MaxDistanceKm
	}
	if req.AgeRange != nil {
		if !validation.AgeRangeValid(req.AgeRange.Min, req.AgeRange.Max) {
			return nil, fmt.Errorf("%w: %d-%d", ErrInvalidAgeRange, req.AgeRange.Min, req.AgeRange.Max)
		}
		fields["ageRange"] = req.AgeRange
	}

	if len(fields) == 0 {
		return s.Repo.GetByID(userID)
	}

	if err := s.Repo.UpdateFields(userID, fields); err != nil {
		utils.GetLogger().Error("Failed to update profile", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	p, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	if s.Nav != nil {
		s.Nav.SetFromProfile(userID, p)
	}
	return p, nil
}

// AddPhoto normalizes and uploads one photo, then appends its resolved URL
// to the ordered list.
func (s *DefaultSessionService) AddPhoto(ctx context.Context, userID string, photo []byte) (*models.UserProfile, error) {
	p, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	if len(p.Photos) >= models.MaxProfilePhotos {
		return nil, ErrPhotoLimitReached
	}

	task, err := s.Media.UploadPhoto(ctx, userID, photo)
	if err != nil {
		return nil, err
	}
	url, _, _ := task.Outcome()

	p.Photos = append(p.Photos, url)
	if err := s.Repo.UpdateFields(userID, map[string]any{"photos": p.Photos}); err != nil {
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}
	if s.Nav != nil {
		s.Nav.SetFromProfile(userID, p)
	}
	return p, nil
}

// RemovePhoto drops one URL from the ordered list. Removing an unknown URL
// is a no-op. The last photo of a complete profile may be removed; the
// navigation mode falls back to profile setup when that happens.
func (s *DefaultSessionService) RemovePhoto(userID string, photoURL string) (*models.UserProfile, error) {
	p, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	kept := p.Photos[:0]
	for _, u := range p.Photos {
		if u != photoURL {
			kept = append(kept, u)
		}
	}
	p.Photos = kept

	if err := s.Repo.UpdateFields(userID, map[string]any{"photos": p.Photos}); err != nil {
		return nil, fmt.Errorf("failed to update photos: %w", err)
	}
	if s.Nav != nil {
		s.Nav.SetFromProfile(userID, p)
	}
	return p, nil
}
