package user

import (
	"context"

	userRepo "gearbook/database/repository/user"
	"gearbook/models"
	"gearbook/services/storage"
)

// UserService is the account-facing business logic: registration,
// authentication, profile management, owner verification.
type UserService interface {
	// Registration and authentication.
	Register(req models.UserRegistrationRequest) (*AuthResponse, error)
	Authenticate(email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	// Password recovery.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error

	// Profile management.
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateProfile(userID string, req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// Owner verification.
	SubmitVerificationDocument(ctx context.Context, userID, localFilePath string) (*models.User, error)
	GetUnverifiedOwners() ([]models.User, error)
	VerifyOwner(ownerID string) (*models.User, error)

	// Admin / utility.
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Storage storage.StorageService
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID       string      `json:"id"`
	Token    string      `json:"token"`
	Role     models.Role `json:"role"`
	FullName string      `json:"fullName,omitempty"`
	Email    string      `json:"email,omitempty"`
	Verified bool        `json:"verified"`
}
