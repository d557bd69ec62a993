// models/profile.go
package models

import "time"

// Gender is a fixed identity option.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non-binary"
	GenderOther     Gender = "other"
)

// ValidGender reports whether g is one of the known options.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderOther:
		return true
	}
	return false
}

// GeoPoint is an optional last-known location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	City      string  `json:"city,omitempty" bson:"city,omitempty"`
	Country   string  `json:"country,omitempty" bson:"country,omitempty"`
}

// AgeRange is an ordered min/max preference pair.
type AgeRange struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

// MaxProfilePhotos caps the ordered photo list.
const MaxProfilePhotos = 6

// UserProfile is the document persisted for each user. The ID is the same
// opaque string the identity record carries.
type UserProfile struct {
	ID          string    `json:"id" bson:"id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	BirthDate   time.Time `json:"birthDate,omitempty" bson:"birthDate,omitempty"`
	Age         int       `json:"age,omitempty" bson:"age,omitempty"`
	Gender      Gender    `json:"gender,omitempty" bson:"gender,omitempty"`
	InterestedIn []Gender `json:"interestedIn,omitempty" bson:"interestedIn,omitempty"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Photos      []string  `json:"photos,omitempty" bson:"photos,omitempty"`
	Interests   []string  `json:"interests,omitempty" bson:"interests,omitempty"`
	Occupation  string    `json:"occupation,omitempty" bson:"occupation,omitempty"`
	University  string    `json:"university,omitempty" bson:"university,omitempty"`

	VoiceIntroURL        string `json:"voiceIntroUrl,omitempty" bson:"voiceIntroUrl,omitempty"`
	VoiceIntroTranscript string `json:"voiceIntroTranscript,omitempty" bson:"voiceIntroTranscript,omitempty"`

	Location *GeoPoint `json:"location,omitempty" bson:"location,omitempty"`

	MaxDistanceKm float64  `json:"maxDistanceKm" bson:"maxDistanceKm"`
	AgeRange      AgeRange `json:"ageRange" bson:"ageRange"`

	LastActiveAt time.Time `json:"lastActiveAt" bson:"lastActiveAt"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsComplete reports whether setup has finished: at least one photo and a
// non-empty bio. This single invariant decides the app mode after sign-in.
func (p *UserProfile) IsComplete() bool {
	return len(p.Photos) > 0 && p.Bio != ""
}

// UserProfileUpdateRequest carries the fields the edit-profile flow may change.
type UserProfileUpdateRequest struct {
	DisplayName   string    `json:"displayName,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Interests     []string  `json:"interests,omitempty"`
	InterestedIn  []Gender  `json:"interestedIn,omitempty"`
	Occupation    string    `json:"occupation,omitempty"`
	University    string    `json:"university,omitempty"`
	Location      *GeoPoint `json:"location,omitempty"`
	MaxDistanceKm float64   `json:"maxDistanceKm,omitempty"`
	AgeRange      *AgeRange `json:"ageRange,omitempty"`
}
