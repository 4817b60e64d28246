package booking

import (
	"context"

	bookingRepo "gearbook/database/repository/booking"
	categoryRepo "gearbook/database/repository/category"
	machineRepo "gearbook/database/repository/machine"
	"gearbook/models"
)

// BookingService drives the booking lifecycle: drafting, pricing,
// persistence, and status transitions.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, req models.BookingRequest) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID, customerID string, req models.BookingRequest) (*models.Booking, error)
	GetBookingByID(id string) (*models.Booking, error)
	GetBookingByCode(code string) (*models.Booking, error)
	GetBookingsByCustomer(customerID string) ([]models.Booking, error)
	GetBookingsByOwner(ownerID string) ([]models.Booking, error)
	GetBookingsByMachine(machineID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, customerID string) error
	UpdateStatus(bookingID, actorID string, admin bool, status models.BookingStatus) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	MachineRepo  machineRepo.MachineRepository
	CategoryRepo categoryRepo.CategoryRepository
}
