package auth

import (
	"context"
	"fmt"

	"cupid/utils"

	"go.uber.org/zap"
)

// DeleteAccount removes the profile document first and the credential record
// second. If the credential deletion fails the session is left intact so the
// user can retry; by then the profile may already be gone, which sign-in
// tolerates.
func (s *DefaultAuthService) DeleteAccount(userID string) error {
	logger := utils.GetLogger()

	if err := s.Profiles.Delete(userID); err != nil {
		logger.Error("Failed to delete profile document", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.Identities.Delete(userID); err != nil {
		logger.Error("Failed to delete identity, session kept", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.Cache.Del(context.Background(), utils.AuthCachePrefix+userID)
	s.Nav.GoToAuthScreen(userID)
	return nil
}
