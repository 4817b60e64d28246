package handlers

import (
	"net/http"
	"os"

	"gearbook/middleware"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AddMachineImageHandler handles POST /api/machines/:id/images. The image
// arrives as multipart form data under the "image" field.
func (h *MachineHandler) AddMachineImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	machineID := c.Param("id")

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file not provided", "detail": err.Error()})
		return
	}

	tempFilePath, err := saveTempUpload(c, fileHeader)
	if err != nil {
		logger.Error("Failed to buffer machine image", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file"})
		return
	}
	defer os.Remove(tempFilePath)

	img, err := h.MachineService.AddImage(c.Request.Context(), machineID, ownerID, tempFilePath)
	if err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to add machine image", zap.String("machineID", machineID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to add image"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, img)
}

// ListMachineImagesHandler handles GET /api/machines/:id/images.
func (h *MachineHandler) ListMachineImagesHandler(c *gin.Context) {
	machineID := c.Param("id")

	images, err := h.MachineService.ListImages(machineID)
	if err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			utils.GetLogger().Error("Failed to list machine images", zap.String("machineID", machineID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to list images"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, images)
}

// DeleteMachineImageHandler handles DELETE /api/machines/:id/images/:imageId.
func (h *MachineHandler) DeleteMachineImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	machineID := c.Param("id")
	imageID := c.Param("imageId")

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.MachineService.DeleteImage(c.Request.Context(), machineID, ownerID, imageID); err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to delete machine image",
				zap.String("machineID", machineID), zap.String("imageID", imageID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to delete image"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}

// SetPrimaryMachineImageHandler handles
// PUT /api/machines/:id/images/:imageId/primary.
func (h *MachineHandler) SetPrimaryMachineImageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	machineID := c.Param("id")
	imageID := c.Param("imageId")

	ownerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.MachineService.SetPrimaryImage(machineID, ownerID, imageID); err != nil {
		status := machineErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to set primary image",
				zap.String("machineID", machineID), zap.String("imageID", imageID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to set primary image"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Primary image updated"})
}
