package user

import (
	"fmt"
	"time"
	"unicode"

	"gearbook/models"
	"gearbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// VerifyPasswordComplexity enforces the minimum password rules: at least
// 8 characters with at least one letter and one digit.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrWeakPassword)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: must contain at least one letter and one digit", ErrWeakPassword)
	}
	return nil
}

// Register validates the request, persists the account, and signs the new
// user in. Admin accounts cannot be self-registered.
func (s *DefaultUserService) Register(req models.UserRegistrationRequest) (*AuthResponse, error) {
	if !req.Role.Valid() || req.Role == models.RoleAdmin {
		return nil, ErrInvalidRole
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmailWithProjection(req.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		// Customers transact immediately; owners must pass verification first.
		Verified:  req.Role == models.RoleCustomer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.Repo.Create(&userObj); err != nil {
		utils.GetLogger().Error("Register: failed to persist user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueSession(&userObj)
}
