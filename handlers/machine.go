package handlers

import (
	"errors"
	"net/http"

	"gearbook/middleware"
	"gearbook/models"
	machine "gearbook/services/machine"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MachineHandler exposes the machine listing endpoints: CRUD, search,
// availability, and the image subresource.
type MachineHandler struct {
	MachineService machine.MachineService
}

// machineErrorStatus maps machine service errors to HTTP statuses.
func machineErrorStatus(err error) int {
	switch {
	case errors.Is(err, machine.ErrNotFound), errors.Is(err, machine.ErrImageNotFound):
		return http.StatusNotFound
	case errors.Is(err, machine.ErrNotMachineOwner), errors.Is(err, machine.ErrOwnerNotVerified):
		return http.StatusForbidden
	case errors.Is(err, machine.ErrInvalidBasePrice), errors.Is(err, machine.ErrUnknownCategory):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CreateMachineHandler handles POST /api/machines.
func (h *MachineHandler) CreateMachineHandler(c *gin.Context) {
	logger := utils.GetLogger()

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	m, err := h.MachineService.CreateMachine(ownerID, req)
	if err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create machine", zap.String("ownerID", ownerID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to create machine"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// UpdateMachineHandler handles PUT /api/machines/:id.
func (h *MachineHandler) UpdateMachineHandler(c *gin.Context) {
	logger := utils.GetLogger()
	machineID := c.Param("id")

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.MachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	m, err := h.MachineService.UpdateMachine(machineID, ownerID, req)
	if err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update machine", zap.String("machineID", machineID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to update machine"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMachineHandler handles DELETE /api/machines/:id.
func (h *MachineHandler) DeleteMachineHandler(c *gin.Context) {
	logger := utils.GetLogger()
	machineID := c.Param("id")

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.MachineService.DeleteMachine(c.Request.Context(), machineID, ownerID); err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to delete machine", zap.String("machineID", machineID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to delete machine"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Machine deleted"})
}

// GetMachineHandler handles GET /api/machines/:id.
func (h *MachineHandler) GetMachineHandler(c *gin.Context) {
	machineID := c.Param("id")

	m, err := h.MachineService.GetMachineByID(machineID)
	if err != nil {
		if errors.Is(err, machine.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get machine", zap.String("machineID", machineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve machine"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetAllMachinesHandler handles GET /api/machines.
func (h *MachineHandler) GetAllMachinesHandler(c *gin.Context) {
	machines, err := h.MachineService.GetAllMachines()
	if err != nil {
		utils.GetLogger().Error("Failed to list machines", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list machines"})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMyMachinesHandler handles GET /api/machines/mine.
func (h *MachineHandler) GetMyMachinesHandler(c *gin.Context) {
	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	machines, err := h.MachineService.GetMachinesByOwner(ownerID)
	if err != nil {
		utils.GetLogger().Error("Failed to list owner machines", zap.String("ownerID", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list machines"})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachinesByOwnerHandler handles GET /api/machines/owners/:ownerId.
func (h *MachineHandler) GetMachinesByOwnerHandler(c *gin.Context) {
	ownerID := c.Param("ownerId")

	machines, err := h.MachineService.GetMachinesByOwner(ownerID)
	if err != nil {
		utils.GetLogger().Error("Failed to list owner machines", zap.String("ownerID", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list machines"})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// SearchMachinesHandler handles POST /api/machines/search.
func (h *MachineHandler) SearchMachinesHandler(c *gin.Context) {
	var req models.MachineSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	machines, err := h.MachineService.SearchMachines(req)
	if err != nil {
		utils.GetLogger().Error("Machine search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, machines)
}

// GetMachineConditionsHandler handles GET /api/machines/machineConditions.
func (h *MachineHandler) GetMachineConditionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.MachineConditions())
}

// ChangeAvailabilityHandler handles PUT /api/machines/change-availability.
func (h *MachineHandler) ChangeAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	m, err := h.MachineService.ChangeAvailability(ownerID, req)
	if err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to change availability", zap.String("machineID", req.MachineID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to change availability"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}
