package config

import "fmt"

// Prime holds configuration for the prime-structured initial-condition
// generator. Zero values are replaced with DefaultPrime's values by
// NormalizeAndValidate.
type Prime struct {
	// BaseRadians is the canonical attractor center (120 degrees).
	BaseRadians float64

	// VelocityBase is the base velocity added to both members of a twin
	// pair's velocity perturbation (default: 0.001).
	VelocityBase float64

	// MinTableSize is the minimum number of twin-prime pairs the built-in
	// table must carry. Implementations should provide at least 35 pairs
	// up to ~900.
	MinTableSize int
}

// DefaultPrime returns the default prime-generator configuration.
func DefaultPrime() Prime {
	return Prime{
		BaseRadians:  2.0944, // 120 degrees in radians
		VelocityBase: 0.001,
		MinTableSize: 35,
	}
}

// Validate checks the Prime configuration for programmer errors.
func (p *Prime) Validate() error {
	var errs ValidationErrors

	if p.VelocityBase < 0 {
		errs = append(errs, ValidationError{
			Field: "VelocityBase", Value: p.VelocityBase, Message: "must be non-negative",
		})
	}
	if p.MinTableSize < 1 {
		errs = append(errs, ValidationError{
			Field: "MinTableSize", Value: p.MinTableSize, Message: "must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeAndValidate fills in zero-valued fields with defaults, then
// validates.
func (p *Prime) NormalizeAndValidate() error {
	if p.BaseRadians == 0 {
		p.BaseRadians = 2.0944
	}
	if p.VelocityBase == 0 {
		p.VelocityBase = 0.001
	}
	if p.MinTableSize == 0 {
		p.MinTableSize = 35
	}

	if err := p.Validate(); err != nil {
		return fmt.Errorf("prime configuration validation failed: %w", err)
	}
	return nil
}
