package auth

import (
	"context"
	"errors"
	"fmt"

	"cupid/utils"
	"cupid/validation"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrResetTokenInvalid covers expired, consumed and never-issued tokens alike.
var ErrResetTokenInvalid = errors.New("this reset link has expired, request a new one")

// SendPasswordReset issues a single-use reset token for the account and
// hands it to the mail sender. The token lives in Redis under a short TTL.
func (s *DefaultAuthService) SendPasswordReset(email string) error {
	if !validation.EmailValid(email) {
		return ErrInvalidEmail
	}

	ident, err := s.Identities.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if ident == nil {
		return ErrUserNotFound
	}

	token := uuid.New().String()
	key := utils.ResetTokenPrefix + token
	if err := s.Cache.Set(context.Background(), key, ident.ID, utils.ResetTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	// TODO: deliver through the transactional mail provider once its account
	// is provisioned; until then the token only reaches the logs.
	utils.GetLogger().Info("Password reset issued",
		zap.String("email", email), zap.String("userID", ident.ID))
	return nil
}

// ResetPassword consumes a reset token and replaces the credential. All
// cached sessions for the account are revoked.
func (s *DefaultAuthService) ResetPassword(token, newPassword string) error {
	if !validation.PasswordValid(newPassword) {
		return ErrWeakPassword
	}

	key := utils.ResetTokenPrefix + token
	userID, err := s.Cache.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return ErrResetTokenInvalid
	}
	if err != nil {
		return fmt.Errorf("failed to verify reset token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.Identities.UpdatePasswordHash(userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.Cache.Del(context.Background(), key)
	s.Cache.Del(context.Background(), utils.AuthCachePrefix+userID)
	return nil
}
