package booking

import (
	"testing"

	"gearbook/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to models.BookingStatus
	}{
		{models.BookingPending, models.BookingConfirmed},
		{models.BookingPending, models.BookingRejected},
		{models.BookingPending, models.BookingCancelled},
		{models.BookingConfirmed, models.BookingActive},
		{models.BookingConfirmed, models.BookingCancelled},
		{models.BookingActive, models.BookingCompleted},
		{models.BookingActive, models.BookingOverdue},
		{models.BookingOverdue, models.BookingCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	forbidden := []struct {
		from, to models.BookingStatus
	}{
		{models.BookingPending, models.BookingActive},
		{models.BookingPending, models.BookingCompleted},
		{models.BookingConfirmed, models.BookingRejected},
		{models.BookingActive, models.BookingCancelled},
		{models.BookingCompleted, models.BookingActive},
		{models.BookingCancelled, models.BookingPending},
		{models.BookingRejected, models.BookingConfirmed},
		{models.BookingOverdue, models.BookingCancelled},
	}
	for _, tc := range forbidden {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []models.BookingStatus{
		models.BookingRejected, models.BookingCompleted, models.BookingCancelled,
	} {
		for _, to := range models.BookingStatuses() {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}
