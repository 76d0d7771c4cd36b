// Package theorem computes the aggregate swarm confidence C(p) and checks
// it against the Oates bound E[C(p)] >= 1 - epsilon over an ensemble of
// runs — a single run is documentation, not evidence.
package theorem

import (
	"gonum.org/v1/gonum/stat"

	"github.com/oates-lab/chaoswarm/evolver"
)

// Bound is the result of checking a single SwarmConfidence against the
// Oates bound.
type Bound struct {
	Cp      float64
	Epsilon float64
	Target  float64 // 1 - epsilon
	Holds   bool
}

// Check reports whether sc.Cp satisfies the bound 1 - epsilon.
func Check(sc evolver.Confidence) Bound {
	target := 1 - sc.Epsilon
	return Bound{
		Cp:      sc.Cp,
		Epsilon: sc.Epsilon,
		Target:  target,
		Holds:   sc.Cp >= target,
	}
}

// EnsembleReport aggregates Bound checks across a configurable number of
// runs (default 30 runs, tolerance 0.05).
type EnsembleReport struct {
	Runs           int
	MeanCp         float64
	MeanTarget     float64
	Tolerance      float64
	BoundSatisfied bool // mean(C_p) >= mean(1-epsilon) - tolerance
}

// Validate checks the Oates bound over an ensemble of per-run confidences.
// A single confidence is not a validation; this is the only validator
// entry point that matters for the theorem itself.
func Validate(confidences []evolver.Confidence, tolerance float64) EnsembleReport {
	if len(confidences) == 0 {
		return EnsembleReport{Tolerance: tolerance}
	}

	cps := make([]float64, len(confidences))
	targets := make([]float64, len(confidences))
	for i, c := range confidences {
		cps[i] = c.Cp
		targets[i] = 1 - c.Epsilon
	}

	meanCp := stat.Mean(cps, nil)
	meanTarget := stat.Mean(targets, nil)

	return EnsembleReport{
		Runs:           len(confidences),
		MeanCp:         meanCp,
		MeanTarget:     meanTarget,
		Tolerance:      tolerance,
		BoundSatisfied: meanCp >= meanTarget-tolerance,
	}
}
