package handlers

import (
	"errors"
	"net/http"

	"gearbook/middleware"
	"gearbook/models"
	booking "gearbook/services/booking"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	BookingService booking.BookingService
}

// bookingErrorStatus maps booking service errors to HTTP statuses.
func bookingErrorStatus(err error) int {
	var valErr booking.ValidationError
	switch {
	case errors.As(err, &valErr),
		errors.Is(err, booking.ErrInvalidBasePrice):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, booking.ErrMachineNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrNotBookingOwner):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrMachineUnavailable),
		errors.Is(err, booking.ErrDatesConflict),
		errors.Is(err, booking.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	customerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.BookingService.CreateBooking(c.Request.Context(), customerID, req)
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create booking", zap.String("customerID", customerID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to create booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// UpdateBookingHandler handles PUT /api/bookings/:id. Only the booking's
// customer can edit it, and only while it is still pending.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	bookingID := c.Param("id")

	customerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.BookingService.UpdateBooking(c.Request.Context(), bookingID, customerID, req)
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update booking", zap.String("bookingID", bookingID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to update booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")

	b, err := h.BookingService.GetBookingByID(bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get booking", zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingByCodeHandler handles GET /api/bookings/get-by-code/:code.
// Owners look bookings up by confirmation code at pickup time.
func (h *BookingHandler) GetBookingByCodeHandler(c *gin.Context) {
	code := c.Param("code")

	b, err := h.BookingService.GetBookingByCode(code)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to get booking by code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// mayViewAccountBookings reports whether the caller may list bookings for the
// given account: their own, or any account when they are an admin.
func mayViewAccountBookings(c *gin.Context, accountID string) bool {
	callerID, ok := middleware.UserIDFrom(c)
	if !ok {
		return false
	}
	if callerID == accountID {
		return true
	}
	session, ok := middleware.SessionFrom(c)
	return ok && session.IsAdmin()
}

// GetUserBookingsHandler handles GET /api/bookings/user/:userId. It lists a
// customer's bookings; customers see only their own.
func (h *BookingHandler) GetUserBookingsHandler(c *gin.Context) {
	customerID := c.Param("userId")
	if !mayViewAccountBookings(c, customerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	bookings, err := h.BookingService.GetBookingsByCustomer(customerID)
	if err != nil {
		utils.GetLogger().Error("Failed to list customer bookings", zap.String("customerID", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetOwnerBookingsHandler handles GET /api/bookings/owner/:ownerId. It lists
// bookings across an owner's machines; owners see only their own.
func (h *BookingHandler) GetOwnerBookingsHandler(c *gin.Context) {
	ownerID := c.Param("ownerId")
	if !mayViewAccountBookings(c, ownerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	bookings, err := h.BookingService.GetBookingsByOwner(ownerID)
	if err != nil {
		utils.GetLogger().Error("Failed to list owner bookings", zap.String("ownerID", ownerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetMachineBookingsHandler handles GET /api/bookings/machine/:machineId.
func (h *BookingHandler) GetMachineBookingsHandler(c *gin.Context) {
	machineID := c.Param("machineId")

	bookings, err := h.BookingService.GetBookingsByMachine(machineID)
	if err != nil {
		utils.GetLogger().Error("Failed to list machine bookings", zap.String("machineID", machineID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()
	bookingID := c.Param("id")

	customerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.BookingService.CancelBooking(c.Request.Context(), bookingID, customerID); err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to cancel booking", zap.String("bookingID", bookingID), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to cancel booking"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// UpdateBookingStatusHandler handles PUT /api/bookings/:id/status-update.
// Owners move bookings against their own machines through the lifecycle;
// admins may move any.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()
	bookingID := c.Param("id")

	callerID, ok := middleware.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	session, _ := middleware.SessionFrom(c)

	var req models.BookingStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	b, err := h.BookingService.UpdateStatus(bookingID, callerID, session.IsAdmin(), req.Status)
	if err != nil {
		status := bookingErrorStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update booking status",
				zap.String("bookingID", bookingID), zap.String("status", string(req.Status)), zap.Error(err))
			c.JSON(status, gin.H{"error": "Failed to update booking status"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingStatusListHandler handles GET /api/bookings/booking-status-list.
func (h *BookingHandler) GetBookingStatusListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.BookingStatuses())
}
