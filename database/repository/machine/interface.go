package machineRepo

import "gearbook/models"

// MachineRepository defines persistence operations for machine listings.
type MachineRepository interface {
	Create(machine *models.Machine) error
	Update(machine *models.Machine) error
	Delete(id string) error
	GetByID(id string) (*models.Machine, error)
	GetAll() ([]models.Machine, error)
	GetByOwner(ownerID string) ([]models.Machine, error)
	Search(req models.MachineSearchRequest) ([]models.Machine, error)
	SetAvailability(id string, available bool) error

	// Image subdocument operations.
	AddImage(machineID string, img models.MachineImage) error
	RemoveImage(machineID, imageID string) error
	SetPrimaryImage(machineID, imageID string) error
}
