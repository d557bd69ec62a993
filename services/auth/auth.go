// Package auth implements the identity side of the system: credentials,
// signed sessions and account deletion. Session tokens are JWTs whose
// SHA-256 hash is cached in Redis; a token missing from the cache is
// treated as signed out regardless of its expiry.
package auth

import (
	"errors"

	identityRepo "cupid/database/repository/identity"
	profileRepo "cupid/database/repository/profile"
	"cupid/models"
	"cupid/services/navigation"
	"cupid/utils"

	"github.com/go-redis/redis/v8"
)

// Stable user-facing failures. Handlers map these to responses verbatim;
// anything else is reported with a generic message.
var (
	ErrInvalidEmail  = errors.New("please enter a valid email address")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrEmailInUse    = errors.New("an account with this email already exists")
	ErrUserNotFound  = errors.New("no account found for that email")
	ErrWrongPassword = errors.New("incorrect password")
	ErrNotSignedIn   = errors.New("not signed in")
)

// Session is what a successful sign-in or sign-up hands back: the signed
// token plus the navigation mode the client should land on.
type Session struct {
	UserID      string              `json:"userId"`
	Email       string              `json:"email"`
	DisplayName string              `json:"displayName"`
	Token       string              `json:"token"`
	Mode        navigation.Mode     `json:"mode"`
	Profile     *models.UserProfile `json:"profile,omitempty"`
}

// AuthService defines identity operations.
type AuthService interface {
	SignUp(email, password, displayName string) (*Session, error)
	SignIn(email, password string) (*Session, error)
	SignOut(userID, token string) error
	CurrentSession(token string) (*Session, error)
	SendPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
	DeleteAccount(userID string) error
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Identities identityRepo.IdentityRepository
	Profiles   profileRepo.ProfileRepository
	Nav        *navigation.Store
	Cache      *redis.Client
}

// NewDefaultAuthService wires the service against the shared auth cache.
func NewDefaultAuthService(identities identityRepo.IdentityRepository, profiles profileRepo.ProfileRepository, nav *navigation.Store) *DefaultAuthService {
	return &DefaultAuthService{
		Identities: identities,
		Profiles:   profiles,
		Nav:        nav,
		Cache:      utils.GetAuthCacheClient(),
	}
}
