package handlers

import (
	"errors"
	"net/http"
	"os"

	"gearbook/middleware"
	"gearbook/models"
	user "gearbook/services/user"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile and verification endpoints for the
// authenticated account.
type UserHandler struct {
	UserService user.UserService
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get profile", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.UserService.UpdateProfile(userID, req)
	if err != nil {
		logger.Error("Failed to update profile", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAccountHandler handles DELETE /api/users/profile.
func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.UserService.DeleteUser(c.Request.Context(), userID); err != nil {
		logger.Error("Failed to delete account", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// GetUserByIDHandler handles GET /api/users/id/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	usr, err := h.UserService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UploadVerificationDocumentHandler handles
// POST /api/auth/upload-verification. Owners submit an identity document for
// admin review; the file arrives as multipart form data.
func (h *UserHandler) UploadVerificationDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document file not provided", "detail": err.Error()})
		return
	}

	tempFilePath, err := saveTempUpload(c, fileHeader)
	if err != nil {
		logger.Error("Failed to buffer verification document", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file"})
		return
	}
	defer os.Remove(tempFilePath)

	usr, err := h.UserService.SubmitVerificationDocument(c.Request.Context(), userID, tempFilePath)
	if err != nil {
		if errors.Is(err, user.ErrNotOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to submit verification document", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit document"})
		return
	}
	c.JSON(http.StatusOK, usr)
}
