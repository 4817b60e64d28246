package handlers

import (
	"errors"
	"net/http"

	"gearbook/middleware"
	"gearbook/models"
	review "gearbook/services/review"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review endpoints.
type ReviewHandler struct {
	ReviewService review.ReviewService
}

// reviewErrorStatus maps review service errors to HTTP statuses.
func reviewErrorStatus(err error) int {
	switch {
	case errors.Is(err, review.ErrNotFound), errors.Is(err, review.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, review.ErrNotReviewer):
		return http.StatusForbidden
	case errors.Is(err, review.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, review.ErrNotReviewable):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CreateReviewHandler handles POST /api/bookings/:id/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()
	bookingID := c.Param("id")

	customerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rev, err := h.ReviewService.CreateReview(bookingID, customerID, req)
	if err != nil {
		status := reviewErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create review", zap.String("bookingID", bookingID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// UpdateReviewHandler handles PUT /api/reviews/:id.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()
	reviewID := c.Param("id")

	customerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rev, err := h.ReviewService.UpdateReview(reviewID, customerID, req)
	if err != nil {
		status := reviewErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update review", zap.String("reviewID", reviewID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to update review"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rev)
}

// DeleteReviewHandler handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()
	reviewID := c.Param("id")

	customerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.ReviewService.DeleteReview(reviewID, customerID); err != nil {
		status := reviewErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to delete review", zap.String("reviewID", reviewID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to delete review"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// GetReviewHandler handles GET /api/reviews/:id.
func (h *ReviewHandler) GetReviewHandler(c *gin.Context) {
	reviewID := c.Param("id")

	rev, err := h.ReviewService.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get review", zap.String("reviewID", reviewID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve review"})
		return
	}
	c.JSON(http.StatusOK, rev)
}

// GetMachineReviewsHandler handles GET /api/machines/:id/reviews.
func (h *ReviewHandler) GetMachineReviewsHandler(c *gin.Context) {
	machineID := c.Param("id")

	reviews, err := h.ReviewService.GetReviewsByMachine(machineID)
	if err != nil {
		utils.GetLogger().Error("Failed to list machine reviews", zap.String("machineID", machineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetBookingReviewsHandler handles GET /api/bookings/:id/reviews.
func (h *ReviewHandler) GetBookingReviewsHandler(c *gin.Context) {
	bookingID := c.Param("id")

	reviews, err := h.ReviewService.GetReviewsByBooking(bookingID)
	if err != nil {
		utils.GetLogger().Error("Failed to list booking reviews", zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
