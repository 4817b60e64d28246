package bookingRepo

import (
	"time"

	"gearbook/models"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	Update(booking *models.Booking) error
	Delete(id string) error
	GetByID(id string) (*models.Booking, error)
	GetByCode(code string) (*models.Booking, error)
	GetAll() ([]models.Booking, error)
	GetByCustomer(customerID string) ([]models.Booking, error)
	GetByOwner(ownerID string) ([]models.Booking, error)
	GetByMachine(machineID string) ([]models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) error

	// Sweeper queries.
	GetStalePending(cutoff time.Time) ([]models.Booking, error)
	GetActivePastEnd(now time.Time) ([]models.Booking, error)

	// GetOverlapping returns confirmed or active bookings for a machine whose
	// date range intersects [start, end].
	GetOverlapping(machineID string, start, end time.Time) ([]models.Booking, error)
}
