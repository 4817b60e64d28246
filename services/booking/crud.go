package booking

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gearbook/models"
	"gearbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// codeLength is the length of the human-readable confirmation code.
const codeLength = 8

// parseDate accepts the date formats the clients send: a plain ISO date or a
// full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// draft is a validated, priced booking draft ready to persist.
type draft struct {
	machine   *models.Machine
	category  *models.Category
	start     time.Time
	end       time.Time
	total     float64
	calcType  models.CalculationType
	hours     float64
	distance  float64
}

// buildDraft validates the request against the machine's category and prices
// it. Every rule a submit-ready booking form enforces lives here: required
// pickup location, required dates in order, a positive quantity matching the
// calculation type, and exactly one of hours/distance set.
func (s *DefaultBookingService) buildDraft(req models.BookingRequest) (*draft, error) {
	if req.PickUpLocation == "" {
		return nil, validationErrorf("pick-up location is required")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, validationErrorf("start date must be an ISO date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, validationErrorf("end date must be an ISO date")
	}
	if end.Before(start) {
		return nil, validationErrorf("end date must not be before start date")
	}

	machine, err := s.MachineRepo.GetByID(req.MachineID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch machine: %w", err)
	}
	if machine == nil {
		return nil, ErrMachineNotFound
	}
	if !machine.Available {
		return nil, ErrMachineUnavailable
	}

	category, err := s.CategoryRepo.GetByID(machine.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, validationErrorf("machine has no category; cannot determine pricing mode")
	}

	// Exactly one of hours/distance may be set, and it must match the
	// category's calculation type.
	switch category.CalculationType {
	case models.CalculationHourly:
		if req.Hours <= 0 {
			return nil, validationErrorf("hours must be a positive number for hourly bookings")
		}
		if req.Distance != 0 {
			return nil, validationErrorf("distance does not apply to hourly bookings")
		}
	case models.CalculationDaily:
		if req.Hours != 0 || req.Distance != 0 {
			return nil, validationErrorf("hours and distance do not apply to daily bookings")
		}
	case models.CalculationDistanceBased:
		if req.Distance <= 0 {
			return nil, validationErrorf("distance must be a positive number for distance-based bookings")
		}
		if req.Hours != 0 {
			return nil, validationErrorf("hours do not apply to distance-based bookings")
		}
	default:
		return nil, validationErrorf("unknown calculation type on category")
	}

	total, ok, err := Quote(QuoteInput{
		CalculationType: category.CalculationType,
		BasePrice:       strconv.FormatFloat(machine.BasePrice, 'f', -1, 64),
		Hours:           req.Hours,
		Distance:        req.Distance,
		StartDate:       start,
		EndDate:         end,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, validationErrorf("booking draft is incomplete; total cannot be computed")
	}

	return &draft{
		machine:  machine,
		category: category,
		start:    start,
		end:      end,
		total:    total,
		calcType: category.CalculationType,
		hours:    req.Hours,
		distance: req.Distance,
	}, nil
}

// CreateBooking validates and prices the draft, checks for conflicts, and
// persists a PENDING booking. The stored total is always the derived one.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, req models.BookingRequest) (*models.Booking, error) {
	d, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.Repo.GetOverlapping(d.machine.ID, d.start, d.end)
	if err != nil {
		return nil, fmt.Errorf("failed to check for conflicts: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, ErrDatesConflict
	}

	code, err := utils.GenerateCode(codeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking code: %w", err)
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		Code:            code,
		MachineID:       d.machine.ID,
		CustomerID:      customerID,
		OwnerID:         d.machine.OwnerID,
		PickUpLocation:  req.PickUpLocation,
		StartDate:       d.start,
		EndDate:         d.end,
		CalculationType: d.calcType,
		Hours:           d.hours,
		Distance:        d.distance,
		TotalAmount:     d.total,
		Status:          models.BookingPending,
	}

	if err := s.Repo.Create(booking); err != nil {
		utils.GetLogger().Error("CreateBooking: persist failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// UpdateBooking replaces the draft fields of a still-pending booking and
// reprices it. Only the customer who created the booking may edit it.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, bookingID, customerID string, req models.BookingRequest) (*models.Booking, error) {
	existing, err := s.GetBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if existing.CustomerID != customerID {
		return nil, validationErrorf("booking belongs to another customer")
	}
	if existing.Status != models.BookingPending {
		return nil, validationErrorf("only pending bookings can be edited")
	}

	d, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}

	existing.MachineID = d.machine.ID
	existing.OwnerID = d.machine.OwnerID
	existing.PickUpLocation = req.PickUpLocation
	existing.StartDate = d.start
	existing.EndDate = d.end
	existing.CalculationType = d.calcType
	existing.Hours = d.hours
	existing.Distance = d.distance
	existing.TotalAmount = d.total

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return existing, nil
}

// GetBookingByID retrieves a booking by ID.
func (s *DefaultBookingService) GetBookingByID(id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// GetBookingByCode retrieves a booking by its confirmation code.
func (s *DefaultBookingService) GetBookingByCode(code string) (*models.Booking, error) {
	b, err := s.Repo.GetByCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// GetBookingsByCustomer lists a customer's bookings.
func (s *DefaultBookingService) GetBookingsByCustomer(customerID string) ([]models.Booking, error) {
	return s.Repo.GetByCustomer(customerID)
}

// GetBookingsByOwner lists bookings against an owner's machines.
func (s *DefaultBookingService) GetBookingsByOwner(ownerID string) ([]models.Booking, error) {
	return s.Repo.GetByOwner(ownerID)
}

// GetBookingsByMachine lists a machine's bookings.
func (s *DefaultBookingService) GetBookingsByMachine(machineID string) ([]models.Booking, error) {
	return s.Repo.GetByMachine(machineID)
}

// CancelBooking moves a customer's own booking to CANCELLED, when the
// lifecycle allows it.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, customerID string) error {
	existing, err := s.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if existing.CustomerID != customerID {
		return validationErrorf("booking belongs to another customer")
	}
	if !CanTransition(existing.Status, models.BookingCancelled) {
		return ErrInvalidTransition
	}
	return s.Repo.UpdateStatus(bookingID, models.BookingCancelled)
}
