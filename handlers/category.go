package handlers

import (
	"net/http"
	"time"

	categoryRepo "gearbook/database/repository/category"
	"gearbook/models"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CategoryHandler exposes the category endpoints. Categories are simple
// enough that the handler talks to the repository directly. Writes flush the
// response cache so the cached list never serves a stale catalogue.
type CategoryHandler struct {
	Repo  categoryRepo.CategoryRepository
	Cache *cache.Cache
}

// invalidate drops every cached response after a catalogue write.
func (h *CategoryHandler) invalidate() {
	if h.Cache != nil {
		h.Cache.Flush()
	}
}

// CreateCategoryHandler handles POST /api/categories.
func (h *CategoryHandler) CreateCategoryHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !req.CalculationType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown calculation type"})
		return
	}

	existing, err := h.Repo.GetByName(req.Name)
	if err != nil {
		logger.Error("Failed to check category name", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "a category with this name already exists"})
		return
	}

	category := models.Category{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		CalculationType: req.CalculationType,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := h.Repo.Create(&category); err != nil {
		logger.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	h.invalidate()
	c.JSON(http.StatusCreated, category)
}

// UpdateCategoryHandler handles PUT /api/categories/:id.
func (h *CategoryHandler) UpdateCategoryHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !req.CalculationType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown calculation type"})
		return
	}

	existing, err := h.Repo.GetByID(id)
	if err != nil {
		logger.Error("Failed to fetch category", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.CalculationType = req.CalculationType
	existing.UpdatedAt = time.Now()

	if err := h.Repo.Update(existing); err != nil {
		logger.Error("Failed to update category", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	h.invalidate()
	c.JSON(http.StatusOK, existing)
}

// DeleteCategoryHandler handles DELETE /api/categories/:id.
func (h *CategoryHandler) DeleteCategoryHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(id); err != nil {
		utils.GetLogger().Error("Failed to delete category", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	h.invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// GetCategoryHandler handles GET /api/categories/:id.
func (h *CategoryHandler) GetCategoryHandler(c *gin.Context) {
	id := c.Param("id")

	category, err := h.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch category", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetAllCategoriesHandler handles GET /api/categories.
func (h *CategoryHandler) GetAllCategoriesHandler(c *gin.Context) {
	categories, err := h.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCalculationTypesHandler handles GET /api/categories/calculation-types.
func (h *CategoryHandler) GetCalculationTypesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.CalculationTypes())
}
