package handlers

import (
	"errors"
	"io"
	"net/http"

	"cupid/models"
	"cupid/services/profile"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxPhotoUploadBytes caps a single uploaded photo.
const maxPhotoUploadBytes = 15 * 1024 * 1024

// profileValidationErr reports whether err is a form-validation failure the
// user may see verbatim. Anything else is a backend failure and stays
// behind a generic message.
func profileValidationErr(err error) bool {
	for _, v := range []error{
		profile.ErrNameTooShort,
		profile.ErrBioTooShort,
		profile.ErrTooFewInterests,
		profile.ErrNoInterestedIn,
		profile.ErrUnknownGender,
		profile.ErrInvalidAgeRange,
		profile.ErrPhotoLimitReached,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// GetProfileHandler returns the authenticated user's profile.
func GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	p, err := sessionSvc.Load(userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		logger.Error("Failed to load profile", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SaveProfileHandler overwrites the whole profile document.
func SaveProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var p models.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	p.ID = userID

	if err := sessionSvc.Save(&p); err != nil {
		if profileValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to save profile", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfileHandler applies a partial edit to the profile.
func UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var req models.UserProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := sessionSvc.UpdateProfile(userID, req)
	if err != nil {
		if profileValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update profile", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddPhotoHandler uploads one photo from a multipart form and appends it.
func AddPhotoHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read photo"})
		return
	}

	p, err := sessionSvc.AddPhoto(c.Request.Context(), userID, data)
	if err != nil {
		if errors.Is(err, profile.ErrPhotoLimitReached) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to add photo", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Photo upload failed. Please try again."})
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemovePhotoHandler drops a photo URL from the ordered list.
func RemovePhotoHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.GetString("userID")

	var body struct {
		PhotoURL string `json:"photoUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	p, err := sessionSvc.RemovePhoto(userID, body.PhotoURL)
	if err != nil {
		logger.Error("Failed to remove photo", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove photo"})
		return
	}
	c.JSON(http.StatusOK, p)
}
