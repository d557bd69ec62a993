package handlers

import (
	"errors"
	"io"
	"net/http"

	"cupid/models"
	"cupid/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxVoiceUploadBytes caps a staged voice intro clip.
const maxVoiceUploadBytes = 5 * 1024 * 1024

// statusForWizardErr maps wizard failures onto HTTP statuses. Step gate
// failures are client errors; everything unknown stays generic.
func statusForWizardErr(err error) (int, string) {
	switch {
	case errors.Is(err, wizard.ErrNoDraft):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, wizard.ErrCompletionInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, wizard.ErrPhotoRequired),
		errors.Is(err, wizard.ErrNameRequired),
		errors.Is(err, wizard.ErrBirthDateRequired),
		errors.Is(err, wizard.ErrUnderage),
		errors.Is(err, wizard.ErrGenderRequired),
		errors.Is(err, wizard.ErrBioTooShort),
		errors.Is(err, wizard.ErrInterestedInEmpty),
		errors.Is(err, wizard.ErrAgeRangeOutOfBounds),
		errors.Is(err, wizard.ErrTooFewInterests):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "Something went wrong. Please try again."
}

// StartWizardHandler opens (or resumes) the setup flow.
func StartWizardHandler(c *gin.Context) {
	userID := c.GetString("userID")
	draft, err := wizardSvc.Start(userID)
	if err != nil {
		getLogger(c).Error("Failed to start setup", zap.String("userID", userID), zap.Error(err))
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// GetWizardHandler returns the active draft.
func GetWizardHandler(c *gin.Context) {
	userID := c.GetString("userID")
	draft, err := wizardSvc.Get(userID)
	if err != nil {
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateWizardHandler applies field edits to the draft.
func UpdateWizardHandler(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.WizardDraftUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	draft, err := wizardSvc.UpdateDraft(userID, req)
	if err != nil {
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// StageWizardMediaHandler stages the photo and optional voice intro from a
// multipart form. Nothing is uploaded to blob storage until completion.
func StageWizardMediaHandler(c *gin.Context) {
	userID := c.GetString("userID")
	req := models.WizardDraftUpdateRequest{}

	if file, _, err := c.Request.FormFile("photo"); err == nil {
		data, readErr := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes))
		file.Close()
		if readErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read photo"})
			return
		}
		req.PhotoData = data
	}
	if file, _, err := c.Request.FormFile("voice"); err == nil {
		data, readErr := io.ReadAll(io.LimitReader(file, maxVoiceUploadBytes))
		file.Close()
		if readErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read voice clip"})
			return
		}
		req.VoiceData = data
	}
	if req.PhotoData == nil && req.VoiceData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a photo or voice file"})
		return
	}

	draft, err := wizardSvc.UpdateDraft(userID, req)
	if err != nil {
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// NextWizardStepHandler advances past the current step; on the last step it
// finishes the whole flow.
func NextWizardStepHandler(c *gin.Context) {
	userID := c.GetString("userID")
	draft, err := wizardSvc.Next(c.Request.Context(), userID)
	if err != nil {
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// BackWizardStepHandler steps backward without validation.
func BackWizardStepHandler(c *gin.Context) {
	userID := c.GetString("userID")
	draft, err := wizardSvc.Back(userID)
	if err != nil {
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, draft)
}

// CompleteWizardHandler validates everything, uploads the staged media and
// writes the profile document.
func CompleteWizardHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	p, err := wizardSvc.Complete(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Setup completion failed", zap.String("userID", userID), zap.Error(err))
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, p)
}

// AbandonWizardHandler discards the draft, signs the user out and returns
// them to the auth surface.
func AbandonWizardHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := wizardSvc.GoToAuth(userID); err != nil {
		status, msg := statusForWizardErr(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	if err := authSvc.SignOut(userID, c.GetString("token")); err != nil {
		getLogger(c).Warn("Failed to revoke session on setup abandon", zap.String("userID", userID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "setup abandoned"})
}
