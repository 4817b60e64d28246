package handlers

import (
	"errors"
	"net/http"

	"gearbook/middleware"
	"gearbook/models"
	record "gearbook/services/record"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordHandler exposes the maintenance record endpoints owners use.
type RecordHandler struct {
	RecordService record.RecordService
}

// FileRecordHandler handles POST /api/machines/:id/records.
func (h *RecordHandler) FileRecordHandler(c *gin.Context) {
	logger := utils.GetLogger()
	machineID := c.Param("id")

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.MaintenanceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rec, err := h.RecordService.FileRecord(machineID, ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrMachineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, record.ErrNotMachineOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, record.ErrInvalidServicedAt):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to file maintenance record", zap.String("machineID", machineID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to file record"})
		}
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetMachineRecordsHandler handles GET /api/machines/:id/records.
func (h *RecordHandler) GetMachineRecordsHandler(c *gin.Context) {
	machineID := c.Param("id")

	records, err := h.RecordService.GetRecordsByMachine(machineID)
	if err != nil {
		utils.GetLogger().Error("Failed to list maintenance records", zap.String("machineID", machineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list records"})
		return
	}
	c.JSON(http.StatusOK, records)
}
