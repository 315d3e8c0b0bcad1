package app

import "errors"

// Application errors.
var (
	// ErrNotFound indicates no element has the requested id.
	ErrNotFound = errors.New("element not found")

	// ErrInvalidConfig indicates a configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
