package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRunInProgress         = errors.New("another run is in progress")
	ErrMissingColumn         = errors.New("required column missing")
	ErrUnknownEndpoint       = errors.New("unknown endpoint")
)
