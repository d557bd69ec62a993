package auth

import (
	"context"
	"fmt"

	"cupid/utils"
	"cupid/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignIn verifies the credentials and opens a session. The mode in the
// returned session comes from the stored profile's completeness, never from
// any client-side guess about account age.
func (s *DefaultAuthService) SignIn(email, password string) (*Session, error) {
	logger := utils.GetLogger()

	if !validation.EmailValid(email) {
		return nil, ErrInvalidEmail
	}

	ident, err := s.Identities.GetByEmail(email)
	if err != nil {
		logger.Error("Failed to fetch identity", zap.Error(err))
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if ident == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	profile, err := s.Profiles.GetByID(ident.ID)
	if err != nil {
		logger.Error("Failed to fetch profile on sign-in", zap.String("userID", ident.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	return s.openSession(ident, profile)
}

// SignOut drops the cached token hash and puts the user back on the
// authentication surface.
func (s *DefaultAuthService) SignOut(userID, token string) error {
	if userID == "" {
		return ErrNotSignedIn
	}
	key := utils.AuthCachePrefix + userID
	if err := s.Cache.Del(context.Background(), key).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.Nav.GoToAuthScreen(userID)
	return nil
}

// CurrentSession resolves a bearer token back to its session. The token must
// both verify and match the cached hash for its subject.
func (s *DefaultAuthService) CurrentSession(token string) (*Session, error) {
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil, ErrNotSignedIn
	}

	key := utils.AuthCachePrefix + userID
	cached, err := s.Cache.Get(context.Background(), key).Result()
	if err != nil || cached != utils.HashToken(token) {
		return nil, ErrNotSignedIn
	}

	profile, err := s.Profiles.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	email := ""
	displayName := ""
	if profile != nil {
		email = profile.Email
		displayName = profile.DisplayName
	}
	return &Session{
		UserID:      userID,
		Email:       email,
		DisplayName: displayName,
		Token:       token,
		Mode:        s.Nav.SetFromProfile(userID, profile),
		Profile:     profile,
	}, nil
}
