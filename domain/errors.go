package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested catch-up session does not exist.
	ErrNotFound = errors.New("catch-up not found")

	// ErrPersistence indicates a catch-up could not be written or removed.
	// Results collected in memory stay usable when this is returned.
	ErrPersistence = errors.New("catch-up could not be saved")

	// ErrInvalidSelection indicates an unknown filter, sort or grouping key.
	ErrInvalidSelection = errors.New("invalid view selection")

	// ErrInvalidRange indicates a catch-up range outside the supported presets.
	ErrInvalidRange = errors.New("invalid catch-up range")
)
