package reviewRepo

import "gearbook/models"

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id string) error
	GetByID(id string) (*models.Review, error)
	GetByMachine(machineID string) ([]models.Review, error)
	GetByBooking(bookingID string) ([]models.Review, error)
}
