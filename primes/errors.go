package primes

import "errors"

// Common error sentinel values for consistent error handling throughout the
// package. These can be used with errors.Is() and mirror a common grouped-sentinel convention.
var (
	// Construction errors (programmer errors)
	ErrInvalidPair  = errors.New("invalid twin-prime pair")
	ErrEmptyTable   = errors.New("prime table is empty")
	ErrInvalidCount = errors.New("invalid initial-condition count")
)
