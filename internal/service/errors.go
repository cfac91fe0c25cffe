package service

import "errors"

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("user is not verified")
	ErrInvalidOrExpired   = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidPriority    = errors.New("priority must be low, medium or high")
)
