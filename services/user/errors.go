package user

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates an account already exists for the email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidResetCode indicates a missing or mismatched password reset code.
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
	// ErrNotOwner indicates an operation that only applies to owner accounts.
	ErrNotOwner = errors.New("user is not an owner account")
	// ErrInvalidRole indicates a registration with a role users cannot pick.
	ErrInvalidRole = errors.New("role must be CUSTOMER or OWNER")
	// ErrWeakPassword indicates a password failing the complexity rules.
	ErrWeakPassword = errors.New("password too weak")
)
