package services

import "errors"

// Sentinel errors shared by the services. Controllers map them to HTTP
// status codes; anything unrecognized becomes a 500.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("record not found")
	ErrUserNotFound      = errors.New("target user not found or inactive")
	ErrValidation        = errors.New("validation failed")
	ErrNothingToReassign = errors.New("work unit has no outstanding work")
	ErrInvalidState      = errors.New("work unit is in a terminal state")
	ErrConflict          = errors.New("work unit was modified concurrently")
	ErrInsufficientStock = errors.New("insufficient stock")
)
