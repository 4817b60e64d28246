package machine

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"gearbook/models"
	"gearbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// parseBasePrice turns the API's decimal string into a stored price,
// rejecting anything that is not a positive finite number.
func parseBasePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, ErrInvalidBasePrice
	}
	return price, nil
}

// validateListing checks the owner and the listing fields shared by create
// and update.
func (s *DefaultMachineService) validateListing(ownerID string, req models.MachineRequest) (float64, error) {
	owner, err := s.UserRepo.GetByIDWithProjection(ownerID, bson.M{"id": 1, "role": 1, "verified": 1})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch owner: %w", err)
	}
	if owner == nil || owner.Role != models.RoleOwner {
		return 0, ErrNotMachineOwner
	}
	if !owner.Verified {
		return 0, ErrOwnerNotVerified
	}

	category, err := s.CategoryRepo.GetByID(req.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return 0, ErrUnknownCategory
	}

	return parseBasePrice(req.BasePrice)
}

// CreateMachine lists a new machine for a verified owner.
func (s *DefaultMachineService) CreateMachine(ownerID string, req models.MachineRequest) (*models.Machine, error) {
	price, err := s.validateListing(ownerID, req)
	if err != nil {
		return nil, err
	}

	m := &models.Machine{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   price,
		Condition:   req.Condition,
		Available:   true,
		Images:      []models.MachineImage{},
	}
	if err := s.Repo.Create(m); err != nil {
		utils.GetLogger().Error("CreateMachine: persist failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create machine: %w", err)
	}
	return m, nil
}

// UpdateMachine applies listing changes to an owner's own machine.
func (s *DefaultMachineService) UpdateMachine(machineID, ownerID string, req models.MachineRequest) (*models.Machine, error) {
	existing, err := s.getOwned(machineID, ownerID)
	if err != nil {
		return nil, err
	}

	price, err := s.validateListing(ownerID, req)
	if err != nil {
		return nil, err
	}

	existing.CategoryID = req.CategoryID
	existing.Name = req.Name
	existing.Description = req.Description
	existing.BasePrice = price
	existing.Condition = req.Condition

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update machine: %w", err)
	}
	return existing, nil
}

// DeleteMachine removes an owner's listing along with its stored images.
func (s *DefaultMachineService) DeleteMachine(ctx context.Context, machineID, ownerID string) error {
	existing, err := s.getOwned(machineID, ownerID)
	if err != nil {
		return err
	}

	for _, img := range existing.Images {
		if err := s.Storage.DeleteFile(ctx, img.PublicID); err != nil {
			utils.GetLogger().Warn("DeleteMachine: failed to delete stored image",
				zap.String("machine", machineID), zap.String("image", img.ID), zap.Error(err))
		}
	}
	return s.Repo.Delete(machineID)
}

// GetMachineByID retrieves a machine by ID.
func (s *DefaultMachineService) GetMachineByID(id string) (*models.Machine, error) {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch machine: %w", err)
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

// GetAllMachines retrieves every listing.
func (s *DefaultMachineService) GetAllMachines() ([]models.Machine, error) {
	return s.Repo.GetAll()
}

// GetMachinesByOwner retrieves an owner's listings.
func (s *DefaultMachineService) GetMachinesByOwner(ownerID string) ([]models.Machine, error) {
	return s.Repo.GetByOwner(ownerID)
}

// SearchMachines retrieves listings matching the filters.
func (s *DefaultMachineService) SearchMachines(req models.MachineSearchRequest) ([]models.Machine, error) {
	return s.Repo.Search(req)
}

// ChangeAvailability toggles whether an owner's machine can be booked.
func (s *DefaultMachineService) ChangeAvailability(ownerID string, req models.AvailabilityRequest) (*models.Machine, error) {
	if _, err := s.getOwned(req.MachineID, ownerID); err != nil {
		return nil, err
	}
	if err := s.Repo.SetAvailability(req.MachineID, req.Available); err != nil {
		return nil, err
	}
	return s.GetMachineByID(req.MachineID)
}

// getOwned fetches a machine and checks it belongs to the caller.
func (s *DefaultMachineService) getOwned(machineID, ownerID string) (*models.Machine, error) {
	existing, err := s.GetMachineByID(machineID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrNotMachineOwner
	}
	return existing, nil
}
