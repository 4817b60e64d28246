// models/user.go
package models

import "time"

// User represents a platform account: customer, machine owner, or admin.
type User struct {
	ID           string `bson:"id" json:"id"`
	FullName     string `bson:"full_name" json:"fullName"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	PhoneNumber  string `bson:"phone_number" json:"phoneNumber,omitempty"`
	Role         Role   `bson:"role" json:"role"`

	// TokenHash is the SHA-256 hash of the currently issued token. Empty when
	// logged out. The session cache in Redis mirrors this for fast checks.
	TokenHash string `bson:"token_hash,omitempty" json:"-"`

	// Owner verification. Owners may not list machines until an admin has
	// verified their identity document.
	Verified            bool   `bson:"verified" json:"verified"`
	VerificationDocID   string `bson:"verification_doc_id,omitempty" json:"-"`
	VerificationDocURL  string `bson:"verification_doc_url,omitempty" json:"verificationDocUrl,omitempty"`
	VerificationPending bool   `bson:"verification_pending" json:"verificationPending"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// UserRegistrationRequest carries the fields required to create an account.
type UserRegistrationRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	Role        Role   `json:"role" binding:"required"`
}

// UserUpdateRequest carries the mutable profile fields.
type UserUpdateRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}
