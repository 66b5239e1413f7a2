package models

import "errors"

// Sentinel errors shared by the repository and service layers. Callers
// classify failures with errors.Is; the HTTP layer translates them to
// status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")
)
