package services

import "errors"

// Sentinel errors shared by the services; handlers translate them to
// HTTP status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicate          = errors.New("username or email already in use")
	ErrNoImage            = errors.New("at least one image is required")
	ErrNotFound           = errors.New("record not found")
	ErrSelfDeletion       = errors.New("you cannot delete your own account")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAdminExists        = errors.New("an admin account already exists")
)
