package services

import "errors"

// Service-level failures the handlers translate to HTTP statuses. ErrNotFound
// covers both "does not exist" and "exists but belongs to someone else" so a
// caller can never probe for another user's resources.
var (
	ErrNotFound             = errors.New("not found")
	ErrQuotaExceeded        = errors.New("no credits remaining")
	ErrDuplicateSavedSearch = errors.New("search already saved")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
