package machine

import (
	"context"
	"errors"

	categoryRepo "gearbook/database/repository/category"
	machineRepo "gearbook/database/repository/machine"
	userRepo "gearbook/database/repository/user"
	"gearbook/models"
	"gearbook/services/storage"
)

var (
	// ErrNotFound indicates the requested machine does not exist.
	ErrNotFound = errors.New("machine not found")
	// ErrImageNotFound indicates the requested image does not exist.
	ErrImageNotFound = errors.New("image not found")
	// ErrNotMachineOwner indicates a caller touching someone else's listing.
	ErrNotMachineOwner = errors.New("machine belongs to another owner")
	// ErrOwnerNotVerified indicates an owner who has not passed verification.
	ErrOwnerNotVerified = errors.New("owner must be verified before listing machines")
	// ErrInvalidBasePrice indicates a base price that is not a positive number.
	ErrInvalidBasePrice = errors.New("base price must be a positive number")
	// ErrUnknownCategory indicates a listing against a category that does not exist.
	ErrUnknownCategory = errors.New("unknown category")
)

// MachineService is the listing-facing business logic: CRUD, search,
// availability, and the image subresource.
type MachineService interface {
	CreateMachine(ownerID string, req models.MachineRequest) (*models.Machine, error)
	UpdateMachine(machineID, ownerID string, req models.MachineRequest) (*models.Machine, error)
	DeleteMachine(ctx context.Context, machineID, ownerID string) error
	GetMachineByID(id string) (*models.Machine, error)
	GetAllMachines() ([]models.Machine, error)
	GetMachinesByOwner(ownerID string) ([]models.Machine, error)
	SearchMachines(req models.MachineSearchRequest) ([]models.Machine, error)
	ChangeAvailability(ownerID string, req models.AvailabilityRequest) (*models.Machine, error)

	AddImage(ctx context.Context, machineID, ownerID, localFilePath string) (*models.MachineImage, error)
	ListImages(machineID string) ([]models.MachineImage, error)
	DeleteImage(ctx context.Context, machineID, ownerID, imageID string) error
	SetPrimaryImage(machineID, ownerID, imageID string) error
}

// DefaultMachineService is the production implementation.
type DefaultMachineService struct {
	Repo         machineRepo.MachineRepository
	CategoryRepo categoryRepo.CategoryRepository
	UserRepo     userRepo.UserRepository
	Storage      storage.StorageService
}
