package review

import (
	"errors"
	"fmt"

	bookingRepo "gearbook/database/repository/booking"
	reviewRepo "gearbook/database/repository/review"
	"gearbook/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the requested review does not exist.
	ErrNotFound = errors.New("review not found")
	// ErrBookingNotFound indicates a review against a missing booking.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrNotReviewable indicates a booking not yet completed.
	ErrNotReviewable = errors.New("only completed bookings can be reviewed")
	// ErrNotReviewer indicates a caller editing someone else's review.
	ErrNotReviewer = errors.New("review belongs to another customer")
	// ErrInvalidRating indicates a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ReviewService manages customer feedback on completed bookings.
type ReviewService interface {
	CreateReview(bookingID, customerID string, req models.ReviewRequest) (*models.Review, error)
	UpdateReview(reviewID, customerID string, req models.ReviewRequest) (*models.Review, error)
	DeleteReview(reviewID, customerID string) error
	GetReviewByID(id string) (*models.Review, error)
	GetReviewsByMachine(machineID string) ([]models.Review, error)
	GetReviewsByBooking(bookingID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo        reviewRepo.ReviewRepository
	BookingRepo bookingRepo.BookingRepository
}

// CreateReview attaches a review to a completed booking the customer made.
func (s *DefaultReviewService) CreateReview(bookingID, customerID string, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotReviewer
	}
	if booking.Status != models.BookingCompleted {
		return nil, ErrNotReviewable
	}

	rev := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		MachineID:  booking.MachineID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.Repo.Create(rev); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return rev, nil
}

// UpdateReview edits a customer's own review.
func (s *DefaultReviewService) UpdateReview(reviewID, customerID string, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	existing, err := s.GetReviewByID(reviewID)
	if err != nil {
		return nil, err
	}
	if existing.CustomerID != customerID {
		return nil, ErrNotReviewer
	}

	existing.Rating = req.Rating
	existing.Comment = req.Comment
	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return existing, nil
}

// DeleteReview removes a customer's own review.
func (s *DefaultReviewService) DeleteReview(reviewID, customerID string) error {
	existing, err := s.GetReviewByID(reviewID)
	if err != nil {
		return err
	}
	if existing.CustomerID != customerID {
		return ErrNotReviewer
	}
	return s.Repo.Delete(reviewID)
}

// GetReviewByID retrieves a review by ID.
func (s *DefaultReviewService) GetReviewByID(id string) (*models.Review, error) {
	rev, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	if rev == nil {
		return nil, ErrNotFound
	}
	return rev, nil
}

// GetReviewsByMachine lists a machine's reviews.
func (s *DefaultReviewService) GetReviewsByMachine(machineID string) ([]models.Review, error) {
	return s.Repo.GetByMachine(machineID)
}

// GetReviewsByBooking lists the reviews attached to a booking.
func (s *DefaultReviewService) GetReviewsByBooking(bookingID string) ([]models.Review, error) {
	return s.Repo.GetByBooking(bookingID)
}
