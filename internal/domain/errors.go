package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternalError   = errors.New("internal error")
	ErrSessionNotFound = errors.New("session not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
)

// Validation constants
const (
	MaxNameLength = 200
)
