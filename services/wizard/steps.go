package wizard

import (
	"errors"
	"fmt"
	"time"

	"cupid/models"
	"cupid/validation"
)

// MinimumAge is the youngest age that may finish setup.
const MinimumAge = 18

// Step gate failures, surfaced verbatim to the client.
var (
	ErrPhotoRequired       = errors.New("pick a profile photo to continue")
	ErrNameRequired        = errors.New("enter your name to continue")
	ErrBirthDateRequired   = errors.New("enter your birth date to continue")
	ErrUnderage            = errors.New("you must be at least 18 to use this app")
	ErrGenderRequired      = errors.New("pick a gender option to continue")
	ErrBioTooShort         = errors.New("write a bio of at least 10 characters")
	ErrInterestedInEmpty   = errors.New("pick at least one option you are interested in")
	ErrAgeRangeOutOfBounds = errors.New("the age range must sit between 18 and 80")
	ErrTooFewInterests     = errors.New("pick at least 3 interests")
)

// ageAt computes whole years between birth and now; the birthday itself
// counts toward the new year.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// StepValid checks whether the draft satisfies the gate of the given step.
// Steps are gated going forward only; going back never revalidates.
func StepValid(draft *models.WizardDraft, step models.WizardStep) error {
	switch step {
	case models.StepPhotoSelection:
		if len(draft.PhotoData) == 0 {
			return ErrPhotoRequired
		}
	case models.StepAboutYou:
		if !validation.NameValid(draft.DisplayName) {
			return ErrNameRequired
		}
		if draft.BirthDate.IsZero() {
			return ErrBirthDateRequired
		}
		if ageAt(draft.BirthDate, time.Now()) < MinimumAge {
			return ErrUnderage
		}
		if !models.ValidGender(draft.Gender) {
			return ErrGenderRequired
		}
		if !validation.BioValid(draft.Bio) {
			return ErrBioTooShort
		}
	case models.StepPreferences:
		if len(draft.InterestedIn) == 0 {
			return ErrInterestedInEmpty
		}
		if !validation.AgeRangeValid(draft.AgeRange.Min, draft.AgeRange.Max) {
			return ErrAgeRangeOutOfBounds
		}
	case models.StepInterests:
		if !validation.InterestsValid(draft.Interests) {
			return ErrTooFewInterests
		}
	default:
		return fmt.Errorf("unknown setup step %d", step)
	}
	return nil
}
