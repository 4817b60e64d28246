package user

import (
	"context"
	"fmt"
	"time"

	"gearbook/models"
	"gearbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies the credentials, issues a fresh token and replaces
// any previous session for the user.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(userRec)
}

// issueSession generates a token for the user, stores its hash in both the
// session cache and the user document, and builds the auth response. Token
// and role are written together; there is no state where one exists without
// the other.
func (s *DefaultUserService) issueSession(userRec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(userRec.ID, userRec.Email, userRec.Role, utils.TokenTTL)
	if err != nil {
		utils.GetLogger().Error("issueSession: failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	tokenHash := utils.HashToken(token)

	ctx := context.Background()
	rec := utils.SessionRecord{
		TokenHash: tokenHash,
		Role:      userRec.Role,
		Email:     userRec.Email,
		CreatedAt: time.Now(),
	}
	if err := utils.SaveSession(ctx, utils.GetAuthCacheClient(), userRec.ID, rec); err != nil {
		utils.GetLogger().Error("issueSession: failed to save session", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	update := bson.M{"$set": bson.M{"token_hash": tokenHash, "updated_at": time.Now()}}
	if err := s.Repo.UpdateWithDocument(userRec.ID, update); err != nil {
		utils.GetLogger().Error("issueSession: failed to persist token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:       userRec.ID,
		Token:    token,
		Role:     userRec.Role,
		FullName: userRec.FullName,
		Email:    userRec.Email,
		Verified: userRec.Verified,
	}, nil
}

// Logout clears the session cache entry and the stored token hash, in that
// order. After this every role predicate evaluates false for the old token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := utils.DeleteSession(ctx, utils.GetAuthCacheClient(), userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	update := bson.M{"$unset": bson.M{"token_hash": ""}, "$set": bson.M{"updated_at": time.Now()}}
	if err := s.Repo.UpdateWithDocument(userID, update); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}
	return nil
}
