package user

import (
	"context"
	"fmt"
	"time"

	"gearbook/config"
	"gearbook/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ForgotPassword issues a short-lived reset code for the account. Delivery
// happens out of band; outside production the code is also logged so
// development flows can complete without a mail transport. A request for an
// unknown email succeeds silently so the endpoint cannot be used to probe
// for accounts.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, email string) error {
	userRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1, "email": 1})
	if err != nil {
		utils.GetLogger().Error("ForgotPassword: failed to fetch user", zap.Error(err))
		return fmt.Errorf("failed to process request, please try again")
	}
	if userRec == nil {
		return nil
	}

	code, err := utils.GenerateCode(8)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	client := utils.GetAuthCacheClient()
	key := utils.PasswordResetPrefix + email
	if err := client.Set(ctx, key, code, utils.PasswordResetTTL).Err(); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	utils.GetLogger().Info("Password reset code issued", resetCodeLogFields(email, code)...)
	return nil
}

// resetCodeLogFields builds the log fields for an issued reset code. The
// code itself is a live credential and is only included outside production.
func resetCodeLogFields(email, code string) []zap.Field {
	fields := []zap.Field{zap.String("email", email)}
	if !config.IsProduction() {
		fields = append(fields, zap.String("code", code))
	}
	return fields
}

// ResetPassword verifies the reset code and replaces the password. Any live
// session is revoked so the old token stops working immediately.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	client := utils.GetAuthCacheClient()
	key := utils.PasswordResetPrefix + email

	stored, err := client.Get(ctx, key).Result()
	if err == redis.Nil || (err == nil && stored != code) {
		return ErrInvalidResetCode
	}
	if err != nil {
		return fmt.Errorf("failed to verify reset code: %w", err)
	}

	if err := VerifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	userRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{"id": 1})
	if err != nil || userRec == nil {
		return ErrNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	update := bson.M{
		"$set":   bson.M{"password_hash": string(hashed), "updated_at": time.Now()},
		"$unset": bson.M{"token_hash": ""},
	}
	if err := s.Repo.UpdateWithDocument(userRec.ID, update); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	_ = client.Del(ctx, key).Err()
	_ = utils.DeleteSession(ctx, client, userRec.ID)
	return nil
}
