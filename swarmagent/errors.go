package swarmagent

import "errors"

// Common error sentinel values for consistent error handling, grouped in
// one file per package convention.
var (
	// ErrNonPositiveStep is returned by UpdateConfidence when h <= 0, a
	// programmer error that fails loudly rather than silently.
	ErrNonPositiveStep = errors.New("step size h must be positive")
)
