package machine

import (
	"context"
	"fmt"

	"gearbook/models"
	"gearbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const imageFolder = "machines/images"

// AddImage uploads a machine image and appends it to the listing. The first
// image on a machine becomes its primary image.
func (s *DefaultMachineService) AddImage(ctx context.Context, machineID, ownerID, localFilePath string) (*models.MachineImage, error) {
	existing, err := s.getOwned(machineID, ownerID)
	if err != nil {
		return nil, err
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, imageFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	url, err := s.Storage.GetDownloadURL(ctx, "image", publicID)
	if err != nil {
		// The asset exists but is unreachable; remove it rather than leave
		// an orphan behind.
		if delErr := s.Storage.DeleteFile(ctx, publicID); delErr != nil {
			utils.GetLogger().Warn("AddImage: failed to clean up orphaned upload",
				zap.String("publicID", publicID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to build image URL: %w", err)
	}

	img := models.MachineImage{
		ID:       uuid.New().String(),
		PublicID: publicID,
		URL:      url,
		Primary:  len(existing.Images) == 0,
	}
	if err := s.Repo.AddImage(machineID, img); err != nil {
		return nil, fmt.Errorf("failed to attach image: %w", err)
	}
	return &img, nil
}

// ListImages returns a machine's images.
func (s *DefaultMachineService) ListImages(machineID string) ([]models.MachineImage, error) {
	existing, err := s.GetMachineByID(machineID)
	if err != nil {
		return nil, err
	}
	return existing.Images, nil
}

// DeleteImage removes an image from the listing and from storage. The stored
// asset is deleted first; if that fails the listing is left untouched, so
// the image never disappears from the listing while still existing remotely.
func (s *DefaultMachineService) DeleteImage(ctx context.Context, machineID, ownerID, imageID string) error {
	existing, err := s.getOwned(machineID, ownerID)
	if err != nil {
		return err
	}

	var target *models.MachineImage
	for i := range existing.Images {
		if existing.Images[i].ID == imageID {
			target = &existing.Images[i]
			break
		}
	}
	if target == nil {
		return ErrImageNotFound
	}

	if err := s.Storage.DeleteFile(ctx, target.PublicID); err != nil {
		return fmt.Errorf("failed to delete stored image: %w", err)
	}
	if err := s.Repo.RemoveImage(machineID, imageID); err != nil {
		return fmt.Errorf("failed to detach image: %w", err)
	}

	// If the primary image went away, promote the first remaining one.
	if target.Primary {
		remaining, err := s.GetMachineByID(machineID)
		if err == nil && len(remaining.Images) > 0 {
			if err := s.Repo.SetPrimaryImage(machineID, remaining.Images[0].ID); err != nil {
				utils.GetLogger().Warn("DeleteImage: failed to promote new primary image",
					zap.String("machine", machineID), zap.Error(err))
			}
		}
	}
	return nil
}

// SetPrimaryImage marks one of the machine's images as primary.
func (s *DefaultMachineService) SetPrimaryImage(machineID, ownerID, imageID string) error {
	existing, err := s.getOwned(machineID, ownerID)
	if err != nil {
		return err
	}

	found := false
	for _, img := range existing.Images {
		if img.ID == imageID {
			found = true
			break
		}
	}
	if !found {
		return ErrImageNotFound
	}
	return s.Repo.SetPrimaryImage(machineID, imageID)
}
