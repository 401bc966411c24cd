package game

import "errors"

// Error taxonomy shared by the world store and its callers. Operations wrap
// these with context using %w; match with errors.Is.
var (
	// ErrInvalidArgument marks malformed input: a missing name, an unknown
	// direction, an out-of-bounds placement.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks an operation that referenced an unknown player id.
	ErrNotFound = errors.New("not found")
)
