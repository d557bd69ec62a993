package handlers

import (
	"errors"
	"net/http"

	"cupid/services/auth"
	"cupid/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// genericAuthError is what the client sees for anything unexpected.
const genericAuthError = "Something went wrong. Please try again."

// statusForAuthErr maps the service's stable failures onto HTTP statuses.
// Unknown errors are hidden behind the generic message.
func statusForAuthErr(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrEmailInUse):
		return http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrNotSignedIn):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrResetTokenInvalid):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, genericAuthError
}

// SignUpHandler creates an account and opens a session.
func SignUpHandler(c *gin.Context) {
	logger := getLogger(c)

	var body struct {
		Email       string `json:"email" binding:"required"`
		Password    string `json:"password" binding:"required"`
		DisplayName string `json:"displayName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sess, err := authSvc.SignUp(body.Email, body.Password, body.DisplayName)
	if err != nil {
		logger.Error("Sign up failed", zap.Error(err))
		status, msg := statusForAuthErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, sess)
}

// SignInHandler verifies credentials and opens a session.
func SignInHandler(c *gin.Context) {
	logger := getLogger(c)

	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sess, err := authSvc.SignIn(body.Email, body.Password)
	if err != nil {
		logger.Warn("Sign in failed", zap.String("email", body.Email), zap.Error(err))
		status, msg := statusForAuthErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// CurrentSessionHandler resolves the bearer token to its session and mode.
func CurrentSessionHandler(c *gin.Context) {
	token := c.GetString("token")
	sess, err := authSvc.CurrentSession(token)
	if err != nil {
		status, msg := statusForAuthErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SignOutHandler revokes the session.
func SignOutHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := authSvc.SignOut(userID, c.GetString("token")); err != nil {
		getLogger(c).Error("Sign out failed", zap.String("userID", userID), zap.Error(err))
		status, msg := statusForAuthErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// ForgotPasswordHandler issues a reset token for the account.
func ForgotPasswordHandler(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := authSvc.SendPasswordReset(body.Email); err != nil {
		getLogger(c).Warn("Password reset request failed", zap.String("email", body.Email), zap.Error(err))
		status, msg := statusForAuthErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset email sent"})
}

// ResetPasswordHandler consumes a reset token and sets a new password.
func ResetPasswordHandler(c *gin.Context) {
	var body struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := authSvc.ResetPassword(body.Token, body.NewPassword); err != nil {
		status, msg := statusForAuthErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

// DeleteAccountHandler removes the profile document, then the identity. A
// partial failure keeps the session alive so the user can retry.
func DeleteAccountHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := authSvc.DeleteAccount(userID); err != nil {
		getLogger(c).Error("Account deletion failed", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account deletion failed. You are still signed in; please try again."})
		return
	}
	// Any in-progress setup draft is orphaned once the account is gone.
	if wizardSvc != nil {
		if err := wizardSvc.GoToAuth(userID); err != nil && !errors.Is(err, wizard.ErrNoDraft) {
			getLogger(c).Warn("Failed to discard setup draft after deletion", zap.String("userID", userID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "account deleted"})
}
