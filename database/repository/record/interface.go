package recordRepo

import "gearbook/models"

// RecordRepository defines persistence operations for maintenance records.
type RecordRepository interface {
	Create(record *models.MaintenanceRecord) error
	GetByID(id string) (*models.MaintenanceRecord, error)
	GetByMachine(machineID string) ([]models.MaintenanceRecord, error)
	GetUnreviewed() ([]models.MaintenanceRecord, error)
	MarkReviewed(id, adminID string) error
	Delete(id string) error
}
