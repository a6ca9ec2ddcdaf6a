package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
//
// Design decision: Package-level sentinel errors rather than fmt.Errorf at
// each check, so callers can branch with errors.Is while still getting a
// readable message.
var (
	// ErrInvalidMaxImages is returned when the image cap is not positive.
	ErrInvalidMaxImages = errors.New("invalid maximum image count: must be positive")

	// ErrInvalidMinWidth is returned when the minimum width is negative.
	ErrInvalidMinWidth = errors.New("invalid minimum width: must be non-negative")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelayRange is returned when the politeness delay bounds
	// are negative or inverted.
	ErrInvalidDelayRange = errors.New("invalid delay range: bounds must be non-negative and min must not exceed max")

	// ErrMissingOutputPath is returned when a required output path is empty.
	ErrMissingOutputPath = errors.New("missing output path: text file and image folder must be set")
)
