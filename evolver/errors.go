package evolver

import "errors"

// Common error sentinel values, mirroring the grouped-sentinel convention
// of the swarm-synchronization errors.go.
var (
	ErrInvalidAgentCount  = errors.New("invalid agent count")
	ErrDistributionLength = errors.New("initial distribution length mismatch")
	ErrInvalidStepSize    = errors.New("invalid step size")
)
