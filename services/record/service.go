package record

import (
	"errors"
	"fmt"
	"time"

	machineRepo "gearbook/database/repository/machine"
	recordRepo "gearbook/database/repository/record"
	"gearbook/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("maintenance record not found")
	// ErrMachineNotFound indicates a record against a missing machine.
	ErrMachineNotFound = errors.New("machine not found")
	// ErrNotMachineOwner indicates a caller filing against someone else's machine.
	ErrNotMachineOwner = errors.New("machine belongs to another owner")
	// ErrInvalidServicedAt indicates a service date that is not an ISO date.
	ErrInvalidServicedAt = errors.New("servicedAt must be an ISO date (YYYY-MM-DD)")
)

// RecordService manages machine maintenance records: owners file them,
// admins review them.
type RecordService interface {
	FileRecord(machineID, ownerID string, req models.MaintenanceRecordRequest) (*models.MaintenanceRecord, error)
	GetRecordsByMachine(machineID string) ([]models.MaintenanceRecord, error)
	GetUnreviewedRecords() ([]models.MaintenanceRecord, error)
	ReviewRecord(recordID, adminID string) (*models.MaintenanceRecord, error)
}

// DefaultRecordService is the production implementation.
type DefaultRecordService struct {
	Repo        recordRepo.RecordRepository
	MachineRepo machineRepo.MachineRepository
}

// FileRecord stores a maintenance record an owner filed for their machine.
func (s *DefaultRecordService) FileRecord(machineID, ownerID string, req models.MaintenanceRecordRequest) (*models.MaintenanceRecord, error) {
	machine, err := s.MachineRepo.GetByID(machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch machine: %w", err)
	}
	if machine == nil {
		return nil, ErrMachineNotFound
	}
	if machine.OwnerID != ownerID {
		return nil, ErrNotMachineOwner
	}

	servicedAt, err := time.Parse("2006-01-02", req.ServicedAt)
	if err != nil {
		return nil, ErrInvalidServicedAt
	}

	rec := &models.MaintenanceRecord{
		ID:          uuid.New().String(),
		MachineID:   machineID,
		OwnerID:     ownerID,
		Description: req.Description,
		ServicedAt:  servicedAt,
		Cost:        req.Cost,
	}
	if err := s.Repo.Create(rec); err != nil {
		return nil, fmt.Errorf("failed to create maintenance record: %w", err)
	}
	return rec, nil
}

// GetRecordsByMachine lists a machine's maintenance history.
func (s *DefaultRecordService) GetRecordsByMachine(machineID string) ([]models.MaintenanceRecord, error) {
	return s.Repo.GetByMachine(machineID)
}

// GetUnreviewedRecords lists records awaiting admin review.
func (s *DefaultRecordService) GetUnreviewedRecords() ([]models.MaintenanceRecord, error) {
	return s.Repo.GetUnreviewed()
}

// ReviewRecord marks a record reviewed by the given admin.
func (s *DefaultRecordService) ReviewRecord(recordID, adminID string) (*models.MaintenanceRecord, error) {
	existing, err := s.Repo.GetByID(recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch maintenance record: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if err := s.Repo.MarkReviewed(recordID, adminID); err != nil {
		return nil, err
	}
	existing.Reviewed = true
	existing.ReviewedBy = adminID
	return existing, nil
}
