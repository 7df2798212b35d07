package domain

import "errors"

var (
	// ErrInvalidInput rejects a bad time format, an empty or out-of-range
	// weekday set, or a non-positive snooze duration. Nothing is mutated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoActiveTab means there is no tab context to snooze.
	ErrNoActiveTab = errors.New("no active tab")

	// ErrNotFound means the requested record or config does not exist.
	ErrNotFound = errors.New("not found")
)
