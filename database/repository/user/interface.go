package userRepo

import (
	"gearbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateWithDocument(id string, update bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
	GetAll() ([]models.User, error)
	GetUnverifiedOwners() ([]models.User, error)
}
