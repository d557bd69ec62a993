// Package wizard drives the four-step profile-setup flow. A draft lives in
// the wizard cache until Complete uploads the staged media, writes the
// profile document and moves the user into the main app.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	profileRepo "cupid/database/repository/profile"
	"cupid/models"
	"cupid/services/media"
	"cupid/services/navigation"
	"cupid/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNoDraft is returned when an operation expects an active draft.
	ErrNoDraft = errors.New("no setup in progress")
	// ErrCompletionInProgress guards against a second Complete while the
	// first is still uploading.
	ErrCompletionInProgress = errors.New("profile setup is already being finished")
)

// TranscriptionEnqueuer hands a finished voice intro to the background
// transcription worker.
type TranscriptionEnqueuer interface {
	EnqueueVoiceTranscription(userID, voiceURL string) error
}

// WizardService defines the setup flow operations.
type WizardService interface {
	Start(userID string) (*models.WizardDraft, error)
	Get(userID string) (*models.WizardDraft, error)
	UpdateDraft(userID string, req models.WizardDraftUpdateRequest) (*models.WizardDraft, error)
	Next(ctx context.Context, userID string) (*models.WizardDraft, error)
	Back(userID string) (*models.WizardDraft, error)
	GoToAuth(userID string) error
	Complete(ctx context.Context, userID string) (*models.UserProfile, error)
}

// DefaultWizardService is the production implementation.
type DefaultWizardService struct {
	Drafts   DraftStore
	Profiles profileRepo.ProfileRepository
	Media    media.Uploader
	Nav      *navigation.Store
	Tasks    TranscriptionEnqueuer
}

// Start returns the user's active draft, creating a fresh one at the first
// step when none exists. Re-entering the wizard resumes where the user left.
func (s *DefaultWizardService) Start(userID string) (*models.WizardDraft, error) {
	draft, err := s.Drafts.Get(userID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}

	draft = &models.WizardDraft{
		DraftID:   uuid.New().String(),
		UserID:    userID,
		Step:      int(models.StepPhotoSelection),
		Status:    models.DraftStatusEditing,
		AgeRange:  models.AgeRange{Min: 18, Max: 35},
		CreatedAt: time.Now(),
	}
	if err := s.Drafts.Save(draft); err != nil {
		return nil, err
	}
	s.Nav.Set(userID, navigation.ModeProfileSetup)
	return draft, nil
}

// Get returns the active draft.
func (s *DefaultWizardService) Get(userID string) (*models.WizardDraft, error) {
	draft, err := s.Drafts.Get(userID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrNoDraft
	}
	return draft, nil
}

// UpdateDraft applies field edits to the active draft. Values for any step
// may be written at any time; gates apply only on Next.
func (s *DefaultWizardService) UpdateDraft(userID string, req models.WizardDraftUpdateRequest) (*models.WizardDraft, error) {
	draft, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusCompleting {
		return nil, ErrCompletionInProgress
	}

	if req.PhotoData != nil {
		draft.PhotoData = req.PhotoData
	}
	if req.VoiceData != nil {
		draft.VoiceData = req.VoiceData
	}
	if req.DisplayName != nil {
		draft.DisplayName = *req.DisplayName
	}
	if req.BirthDate != nil {
		draft.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		draft.Gender = *req.Gender
	}
	if req.Bio != nil {
		draft.Bio = *req.Bio
	}
	if req.InterestedIn != nil {
		draft.InterestedIn = req.InterestedIn
	}
	if req.Interests != nil {
		draft.Interests = req.Interests
	}
	if req.Occupation != nil {
		draft.Occupation = *req.Occupation
	}
	if req.University != nil {
		draft.University = *req.University
	}
	if req.MaxDistanceKm != nil {
		draft.MaxDistanceKm = *req.MaxDistanceKm
	}
	if req.AgeRange != nil {
		draft.AgeRange = *req.AgeRange
	}

	if err := s.Drafts.Save(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Next advances past the current step once its gate passes. Passing the last
// gate finishes the whole flow.
func (s *DefaultWizardService) Next(ctx context.Context, userID string) (*models.WizardDraft, error) {
	draft, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusCompleting {
		return nil, ErrCompletionInProgress
	}

	if err := StepValid(draft, models.WizardStep(draft.Step)); err != nil {
		return nil, err
	}

	if draft.Step == models.WizardStepCount-1 {
		if _, err := s.Complete(ctx, userID); err != nil {
			return nil, err
		}
		draft.Status = models.DraftStatusDone
		return draft, nil
	}

	draft.Step++
	if err := s.Drafts.Save(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Back steps backward without revalidating anything. Already at the first
// step it is a no-op.
func (s *DefaultWizardService) Back(userID string) (*models.WizardDraft, error) {
	draft, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusCompleting {
		return nil, ErrCompletionInProgress
	}
	if draft.Step > 0 {
		draft.Step--
		if err := s.Drafts.Save(draft); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

// GoToAuth abandons the flow: the draft is discarded and the user returns to
// the authentication surface.
func (s *DefaultWizardService) GoToAuth(userID string) error {
	if err := s.Drafts.Delete(userID); err != nil {
		return err
	}
	s.Nav.GoToAuthScreen(userID)
	return nil
}

// Complete validates every gate, uploads the staged media, writes the
// profile document and moves the user into the main app. While the upload
// runs the draft is marked completing so a second submit is rejected; any
// failure restores the draft for another attempt.
func (s *DefaultWizardService) Complete(ctx context.Context, userID string) (*models.UserProfile, error) {
	logger := utils.GetLogger()

	draft, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusCompleting {
		return nil, ErrCompletionInProgress
	}

	for step := models.WizardStep(0); step < models.WizardStepCount; step++ {
		if err := StepValid(draft, step); err != nil {
			return nil, err
		}
	}

	draft.Status = models.DraftStatusCompleting
	if err := s.Drafts.Save(draft); err != nil {
		return nil, err
	}

	restore := func() {
		draft.Status = models.DraftStatusEditing
		if err := s.Drafts.Save(draft); err != nil {
			logger.Error("Failed to restore setup draft after failed completion",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	photoURL, voiceURL, err := s.Media.UploadProfileMedia(ctx, userID, draft.PhotoData, draft.VoiceData)
	if err != nil {
		restore()
		return nil, fmt.Errorf("failed to upload profile media: %w", err)
	}

	existing, err := s.Profiles.GetByID(userID)
	if err != nil {
		restore()
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	now := time.Now()
	profile := &models.UserProfile{
		ID:            userID,
		DisplayName:   draft.DisplayName,
		BirthDate:     draft.BirthDate,
		Age:           ageAt(draft.BirthDate, now),
		Gender:        draft.Gender,
		InterestedIn:  draft.InterestedIn,
		Bio:           draft.Bio,
		Photos:        []string{photoURL},
		Interests:     draft.Interests,
		Occupation:    draft.Occupation,
		University:    draft.University,
		VoiceIntroURL: voiceURL,
		MaxDistanceKm: draft.MaxDistanceKm,
		AgeRange:      draft.AgeRange,
		LastActiveAt:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if profile.MaxDistanceKm <= 0 {
		profile.MaxDistanceKm = 50
	}
	if existing != nil {
		profile.Email = existing.Email
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.Profiles.Set(profile); err != nil {
		restore()
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if voiceURL != "" && s.Tasks != nil {
		if err := s.Tasks.EnqueueVoiceTranscription(userID, voiceURL); err != nil {
			// Transcription is best-effort background work.
			logger.Warn("Failed to enqueue voice transcription",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	if err := s.Drafts.Delete(userID); err != nil {
		logger.Warn("Failed to discard finished setup draft",
			zap.String("userID", userID), zap.Error(err))
	}

	s.Nav.CompleteProfileSetup(userID)
	return profile, nil
}
