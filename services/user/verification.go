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

const verificationFolder = "verification/documents"

// SubmitVerificationDocument uploads an owner's identity document and marks
// the account pending review. Only owner accounts carry verification state.
func (s *DefaultUserService) SubmitVerificationDocument(ctx context.Context, userID, localFilePath string) (*models.User, error) {
	userRec, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if userRec.Role != models.RoleOwner {
		return nil, ErrNotOwner
	}

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, verificationFolder)
	if err != nil {
		utils.GetLogger().Error("SubmitVerificationDocument: upload failed",
			zap.String("id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to store verification document: %w", err)
	}

	docURL, err := s.Storage.GetSecureDownloadURL(ctx, "image", publicID, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to build document URL: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"verification_doc_id":  publicID,
		"verification_doc_url": docURL,
		"verification_pending": true,
		"verified":             false,
		"updated_at":           time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(userID, update); err != nil {
		return nil, fmt.Errorf("failed to record verification document: %w", err)
	}
	return s.GetUserByID(userID)
}

// GetUnverifiedOwners lists owner accounts awaiting verification.
func (s *DefaultUserService) GetUnverifiedOwners() ([]models.User, error) {
	return s.Repo.GetUnverifiedOwners()
}

// VerifyOwner marks an owner account verified. The caller must hold the
// verify-owners capability; the route guard enforces that.
func (s *DefaultUserService) VerifyOwner(ownerID string) (*models.User, error) {
	userRec, err := s.GetUserByID(ownerID)
	if err != nil {
		return nil, err
	}
	if userRec.Role != models.RoleOwner {
		return nil, ErrNotOwner
	}

	update := bson.M{"$set": bson.M{
		"verified":             true,
		"verification_pending": false,
		"updated_at":           time.Now(),
	}}
	if err := s.Repo.UpdateWithDocument(ownerID, update); err != nil {
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}
	return s.GetUserByID(ownerID)
}
