package auth

import (
	"context"
	"fmt"
	"time"

	identityRepo "cupid/database/repository/identity"
	"cupid/models"
	"cupid/utils"
	"cupid/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignUp validates the form, creates the credential record and a placeholder
// profile, then opens a session. A fresh account always lands in profile
// setup because the placeholder can never satisfy the completeness check.
func (s *DefaultAuthService) SignUp(email, password, displayName string) (*Session, error) {
	logger := utils.GetLogger()

	if !validation.EmailValid(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.PasswordValid(password) {
		return nil, ErrWeakPassword
	}
	if !validation.NameValid(displayName) {
		return nil, fmt.Errorf("display name is too short")
	}

	existing, err := s.Identities.GetByEmail(email)
	if err != nil {
		logger.Error("Failed to check for existing identity", zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	ident := &identityRepo.Identity{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Identities.Create(ident); err != nil {
		logger.Error("Failed to create identity", zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	profile := &models.UserProfile{
		ID:            ident.ID,
		Email:         email,
		DisplayName:   displayName,
		MaxDistanceKm: 50,
		AgeRange:      models.AgeRange{Min: 18, Max: 35},
		LastActiveAt:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Profiles.Create(profile); err != nil {
		logger.Error("Failed to create placeholder profile", zap.String("userID", ident.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.openSession(ident, profile)
}

// openSession mints a token, caches its hash, and records the navigation mode.
func (s *DefaultAuthService) openSession(ident *identityRepo.Identity, profile *models.UserProfile) (*Session, error) {
	token, err := utils.GenerateToken(ident.ID, ident.Email, utils.AuthCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	key := utils.AuthCachePrefix + ident.ID
	if err := s.Cache.Set(context.Background(), key, utils.HashToken(token), utils.AuthCacheTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache session token: %w", err)
	}

	mode := s.Nav.SetFromProfile(ident.ID, profile)

	displayName := ""
	if profile != nil {
		displayName = profile.DisplayName
	}
	return &Session{
		UserID:      ident.ID,
		Email:       ident.Email,
		DisplayName: displayName,
		Token:       token,
		Mode:        mode,
		Profile:     profile,
	}, nil
}
