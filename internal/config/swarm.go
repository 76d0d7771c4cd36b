package config

import (
	"fmt"
)

// Swarm holds all configurable parameters for the swarm-Koopman evolution
// core. Zero values are replaced with DefaultSwarm's values by
// NormalizeAndValidate.
type Swarm struct {
	// Time-stepping
	StepSize     float64 // h, default 1e-4
	Steps        int     // T, default range 50-100
	MetricPeriod int     // emit a step_metric record every this many steps

	// Flocking (Reynolds-style) parameters
	NeighborRadius   float64 // R_neighbor, default 2.0
	SeparationRadius float64 // R_sep, default 0.5
	CohesionWeight   float64 // default 0.10
	SeparationWeight float64 // default 1.0 (per-neighbor term before averaging)
	AlignmentWeight  float64 // default 0.05
	Damping          float64 // default 0.99

	// Confidence EMA
	ConfidenceAlpha float64 // alpha, default 0.1

	// Path history bound
	HistoryCap        int // L_max, default 100
	HistoryTruncateTo int // retained length after truncation, default 50

	// Theorem bound
	EpsilonH          float64 // O(h^4) surrogate, default 0.01
	EnsembleRuns      int     // default 30
	EnsembleTolerance float64 // default 0.05
}

// DefaultSwarm returns the default evolver configuration.
func DefaultSwarm() Swarm {
	return Swarm{
		StepSize:     1e-4,
		Steps:        50,
		MetricPeriod: 10,

		NeighborRadius:   2.0,
		SeparationRadius: 0.5,
		CohesionWeight:   0.10,
		SeparationWeight: 1.0,
		AlignmentWeight:  0.05,
		Damping:          0.99,

		ConfidenceAlpha: 0.1,

		HistoryCap:        100,
		HistoryTruncateTo: 50,

		EpsilonH:          0.01,
		EnsembleRuns:      30,
		EnsembleTolerance: 0.05,
	}
}

// AutoScaleSwarm returns a configuration that mildly adjusts the metric
// period and neighbor radius with swarm size. This is a convenience
// default, not a strict requirement — callers may always pass an explicit
// Swarm config.
func AutoScaleSwarm(numAgents int) Swarm {
	cfg := DefaultSwarm()

	switch {
	case numAgents <= 1:
		// A single agent has no neighbors; flocking forces are moot,
		// but the radius is kept so Validate never special-cases N=1.
	case numAgents < 20:
		cfg.MetricPeriod = 5
	case numAgents < 200:
		cfg.MetricPeriod = 10
	default:
		cfg.MetricPeriod = 25
		cfg.NeighborRadius = 1.5 // denser swarms: tighten the neighborhood
	}

	return cfg
}

// Validate performs comprehensive validation and returns errors instead of
// modifying the config.
func (c *Swarm) Validate(numAgents int) error {
	var errs ValidationErrors

	if numAgents <= 0 {
		errs = append(errs, ValidationError{
			Field: "numAgents", Value: numAgents, Message: "must be positive",
		})
	}
	if c.StepSize <= 0 {
		errs = append(errs, ValidationError{
			Field: "StepSize", Value: c.StepSize, Message: "must be positive",
		})
	}
	if c.Steps < 0 {
		errs = append(errs, ValidationError{
			Field: "Steps", Value: c.Steps, Message: "cannot be negative",
		})
	}
	if c.MetricPeriod <= 0 {
		errs = append(errs, ValidationError{
			Field: "MetricPeriod", Value: c.MetricPeriod, Message: "must be positive",
		})
	}
	if c.NeighborRadius <= 0 {
		errs = append(errs, ValidationError{
			Field: "NeighborRadius", Value: c.NeighborRadius, Message: "must be positive",
		})
	}
	if c.SeparationRadius <= 0 {
		errs = append(errs, ValidationError{
			Field: "SeparationRadius", Value: c.SeparationRadius, Message: "must be positive",
		})
	}
	if c.SeparationRadius > c.NeighborRadius {
		errs = append(errs, ValidationError{
			Field:   "SeparationRadius",
			Value:   fmt.Sprintf("SeparationRadius=%g, NeighborRadius=%g", c.SeparationRadius, c.NeighborRadius),
			Message: "cannot exceed NeighborRadius",
		})
	}
	if c.Damping <= 0 || c.Damping > 1 {
		errs = append(errs, ValidationError{
			Field: "Damping", Value: c.Damping, Message: "must be in (0, 1]",
		})
	}
	if c.ConfidenceAlpha <= 0 || c.ConfidenceAlpha > 1 {
		errs = append(errs, ValidationError{
			Field: "ConfidenceAlpha", Value: c.ConfidenceAlpha, Message: "must be in (0, 1]",
		})
	}
	if c.HistoryCap <= 0 {
		errs = append(errs, ValidationError{
			Field: "HistoryCap", Value: c.HistoryCap, Message: "must be positive",
		})
	}
	if c.HistoryTruncateTo <= 0 || c.HistoryTruncateTo > c.HistoryCap {
		errs = append(errs, ValidationError{
			Field:   "HistoryTruncateTo",
			Value:   fmt.Sprintf("HistoryTruncateTo=%d, HistoryCap=%d", c.HistoryTruncateTo, c.HistoryCap),
			Message: "must be positive and not exceed HistoryCap",
		})
	}
	if c.EpsilonH < 0 {
		errs = append(errs, ValidationError{
			Field: "EpsilonH", Value: c.EpsilonH, Message: "cannot be negative",
		})
	}
	if c.EnsembleRuns < 1 {
		errs = append(errs, ValidationError{
			Field: "EnsembleRuns", Value: c.EnsembleRuns, Message: "must be at least 1",
		})
	}
	if c.EnsembleTolerance < 0 {
		errs = append(errs, ValidationError{
			Field: "EnsembleTolerance", Value: c.EnsembleTolerance, Message: "cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeAndValidate fills in zero-valued fields with defaults, then
// validates. Mirrors a common normalize-then-validate config contract.
func (c *Swarm) NormalizeAndValidate(numAgents int) error {
	c.normalize()

	if err := c.Validate(numAgents); err != nil {
		return fmt.Errorf("swarm configuration validation failed: %w", err)
	}
	return nil
}

// normalize fills zero-valued fields with DefaultSwarm's values. A config
// built field-by-field (rather than via DefaultSwarm) still gets sane
// defaults for anything left unset.
func (c *Swarm) normalize() {
	d := DefaultSwarm()

	if c.StepSize == 0 {
		c.StepSize = d.StepSize
	}
	if c.Steps == 0 {
		c.Steps = d.Steps
	}
	if c.MetricPeriod == 0 {
		c.MetricPeriod = d.MetricPeriod
	}
	if c.NeighborRadius == 0 {
		c.NeighborRadius = d.NeighborRadius
	}
	if c.SeparationRadius == 0 {
		c.SeparationRadius = d.SeparationRadius
	}
	if c.CohesionWeight == 0 {
		c.CohesionWeight = d.CohesionWeight
	}
	if c.SeparationWeight == 0 {
		c.SeparationWeight = d.SeparationWeight
	}
	if c.AlignmentWeight == 0 {
		c.AlignmentWeight = d.AlignmentWeight
	}
	if c.Damping == 0 {
		c.Damping = d.Damping
	}
	if c.ConfidenceAlpha == 0 {
		c.ConfidenceAlpha = d.ConfidenceAlpha
	}
	if c.HistoryCap == 0 {
		c.HistoryCap = d.HistoryCap
	}
	if c.HistoryTruncateTo == 0 {
		c.HistoryTruncateTo = d.HistoryTruncateTo
	}
	if c.EnsembleRuns == 0 {
		c.EnsembleRuns = d.EnsembleRuns
	}
	if c.EnsembleTolerance == 0 {
		c.EnsembleTolerance = d.EnsembleTolerance
	}
	// EpsilonH's default (0.01) is a real, meaningful zero elsewhere, but
	// it is fixed at 0.01 unless the caller deliberately overrides it, so
	// treat zero as "unset" here too.
	if c.EpsilonH == 0 {
		c.EpsilonH = d.EpsilonH
	}
}
