package domain

import "errors"

// Domain errors represent business logic failures.
// The serving boundary maps each one to a fixed status code.
var (
	// ErrNotFound indicates no artifact exists for a dataset slug.
	ErrNotFound = errors.New("not found")

	// ErrTooLarge indicates an artifact exceeds the configured size
	// ceiling. Raised before full decompression where possible.
	ErrTooLarge = errors.New("artifact too large")

	// ErrMalformed indicates artifact bytes do not decode into a
	// structurally valid export.
	ErrMalformed = errors.New("malformed export")

	// ErrInvalidInput indicates malformed or missing request input,
	// such as an empty search query or dataset slug.
	ErrInvalidInput = errors.New("invalid input")
)
