package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrTooManyRequests       = errors.New("too many requests")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
