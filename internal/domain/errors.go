package domain

import "errors"

var (
	// ErrValidation marks malformed input rejected before touching storage.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced order, product or user that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks a failed credential or session check.
	ErrUnauthorized = errors.New("unauthorized")
)
