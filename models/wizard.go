// models/wizard.go
package models

import "time"

// WizardStep identifies one step of the profile-setup sequence.
type WizardStep int

const (
	StepPhotoSelection WizardStep = iota
	StepAboutYou
	StepPreferences
	StepInterests
)

// WizardStepCount is the fixed number of setup steps.
const WizardStepCount = 4

func (s WizardStep) String() string {
	switch s {
	case StepPhotoSelection:
		return "photoSelection"
	case StepAboutYou:
		return "aboutYou"
	case StepPreferences:
		return "preferences"
	case StepInterests:
		return "interests"
	}
	return "unknown"
}

// Draft lifecycle states.
const (
	DraftStatusEditing    = "editing"
	DraftStatusCompleting = "completing"
	DraftStatusDone       = "done"
)

// WizardDraft holds the in-progress setup values for one user. It lives in
// Redis with a TTL and is discarded on completion or on returning to the
// auth screen; nothing in it touches the profile document until Complete.
type WizardDraft struct {
	DraftID string `json:"draftId"`
	UserID  string `json:"userId"`
	Step    int    `json:"step"`
	Status  string `json:"status"`

	// Staged media, not yet uploaded.
	PhotoData []byte `json:"photoData,omitempty"`
	VoiceData []byte `json:"voiceData,omitempty"`

	DisplayName   string    `json:"displayName,omitempty"`
	BirthDate     time.Time `json:"birthDate,omitempty"`
	Gender        Gender    `json:"gender,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	InterestedIn  []Gender  `json:"interestedIn,omitempty"`
	Interests     []string  `json:"interests,omitempty"`
	Occupation    string    `json:"occupation,omitempty"`
	University    string    `json:"university,omitempty"`
	MaxDistanceKm float64   `json:"maxDistanceKm,omitempty"`
	AgeRange      AgeRange  `json:"ageRange"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// WizardDraftUpdateRequest carries field edits for the active draft.
// Pointer fields distinguish "leave unchanged" from "set to zero value".
type WizardDraftUpdateRequest struct {
	PhotoData     []byte     `json:"photoData,omitempty"`
	VoiceData     []byte     `json:"voiceData,omitempty"`
	DisplayName   *string    `json:"displayName,omitempty"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	Gender        *Gender    `json:"gender,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	InterestedIn  []Gender   `json:"interestedIn,omitempty"`
	Interests     []string   `json:"interests,omitempty"`
	Occupation    *string    `json:"occupation,omitempty"`
	University    *string    `json:"university,omitempty"`
	MaxDistanceKm *float64   `json:"maxDistanceKm,omitempty"`
	AgeRange      *AgeRange  `json:"ageRange,omitempty"`
}
