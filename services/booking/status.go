package booking

import (
	"fmt"

	"gearbook/models"
	"gearbook/utils"

	"go.uber.org/zap"
)

// transitions is the booking lifecycle: which statuses each status may move
// to. Terminal statuses have no entry.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingRejected, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingActive, models.BookingCancelled},
	models.BookingActive:    {models.BookingCompleted, models.BookingOverdue},
	models.BookingOverdue:   {models.BookingCompleted},
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a booking to a new status on behalf of an actor. Owners
// may only move bookings against their own machines; admins (and the sweeper,
// which acts with admin authority) may move any. Confirming re-checks for
// conflicting bookings, since another draft on the same dates may have been
// confirmed after this one was created.
func (s *DefaultBookingService) UpdateStatus(bookingID, actorID string, admin bool, status models.BookingStatus) (*models.Booking, error) {
	existing, err := s.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !admin && existing.OwnerID != actorID {
		return nil, ErrNotBookingOwner
	}
	if !CanTransition(existing.Status, status) {
		utils.GetLogger().Warn("UpdateStatus: rejected transition",
			zap.String("booking", bookingID),
			zap.String("from", string(existing.Status)),
			zap.String("to", string(status)))
		return nil, ErrInvalidTransition
	}
	if status == models.BookingConfirmed {
		overlapping, err := s.Repo.GetOverlapping(existing.MachineID, existing.StartDate, existing.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to check for conflicts: %w", err)
		}
		if len(overlapping) > 0 {
			return nil, ErrDatesConflict
		}
	}
	if err := s.Repo.UpdateStatus(bookingID, status); err != nil {
		return nil, err
	}
	existing.Status = status
	return existing, nil
}
