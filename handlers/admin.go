package handlers

import (
	"errors"
	"net/http"

	"gearbook/middleware"
	record "gearbook/services/record"
	user "gearbook/services/user"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes the admin console endpoints: user management, owner
// verification, and maintenance record review.
type AdminHandler struct {
	UserService   user.UserService
	RecordService record.RecordService
}

// GetAllUsersHandler handles GET /api/users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers()
	if err != nil {
		utils.GetLogger().Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUnverifiedUsersHandler handles GET /api/users/unverified-users. It lists
// owner accounts waiting for verification.
func (h *AdminHandler) GetUnverifiedUsersHandler(c *gin.Context) {
	owners, err := h.UserService.GetUnverifiedOwners()
	if err != nil {
		utils.GetLogger().Error("Failed to list unverified owners", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unverified owners"})
		return
	}
	c.JSON(http.StatusOK, owners)
}

// VerifyOwnerHandler handles POST /api/users/verify-collector/:id.
func (h *AdminHandler) VerifyOwnerHandler(c *gin.Context) {
	logger := utils.GetLogger()
	ownerID := c.Param("id")

	usr, err := h.UserService.VerifyOwner(ownerID)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrNotOwner):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to verify owner", zap.String("ownerID", ownerID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify owner"})
		}
		return
	}
	c.JSON(http.StatusOK, usr)
}

// DeleteUserHandler handles DELETE /api/users/id/:id.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if err := h.UserService.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to delete user", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetUnreviewedRecordsHandler handles GET /api/records/unreviewed.
func (h *AdminHandler) GetUnreviewedRecordsHandler(c *gin.Context) {
	records, err := h.RecordService.GetUnreviewedRecords()
	if err != nil {
		utils.GetLogger().Error("Failed to list unreviewed records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list unreviewed records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ReviewRecordHandler handles PUT /api/records/:id/review.
func (h *AdminHandler) ReviewRecordHandler(c *gin.Context) {
	logger := utils.GetLogger()
	recordID := c.Param("id")

	adminID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rec, err := h.RecordService.ReviewRecord(recordID, adminID)
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to review record", zap.String("recordID", recordID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review record"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
