package user

import (
	"context"
	"fmt"
	"time"

	"gearbook/models"
	"gearbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetUserByID retrieves a user by ID.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, ErrNotFound
	}
	return usr, nil
}

// GetUserByEmail retrieves a user by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, ErrNotFound
	}
	return usr, nil
}

// UpdateProfile applies the mutable profile fields.
func (s *DefaultUserService) UpdateProfile(userID string, req models.UserUpdateRequest) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if req.FullName != "" {
		set["full_name"] = req.FullName
	}
	if req.PhoneNumber != "" {
		set["phone_number"] = req.PhoneNumber
	}
	if err := s.Repo.UpdateWithDocument(userID, bson.M{"$set": set}); err != nil {
		utils.GetLogger().Error("UpdateProfile: update failed", zap.String("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetUserByID(userID)
}

// DeleteUser removes the account and clears any live session.
func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := utils.DeleteSession(ctx, utils.GetAuthCacheClient(), userID); err != nil {
		utils.GetLogger().Warn("DeleteUser: failed to clear session", zap.String("id", userID), zap.Error(err))
	}
	if err := s.Repo.Delete(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetAllUsers retrieves every account. Admin only; the handler gates it.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}
