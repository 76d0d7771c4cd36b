package swarmagent

import "math"

// Observable names a scalar function of agent state, used as the argument
// to the Koopman operator. The observable registry is a closed set,
// represented here as a tagged-variant enumeration rather than an open
// string-to-string mapping.
type Observable int

const (
	// ObservablePosition is x.
	ObservablePosition Observable = iota
	// ObservableVelocity is v.
	ObservableVelocity
	// ObservableEnergy is 0.5*(v^2+x^2), a harmonic-oscillator proxy —
	// not a true double-pendulum Hamiltonian.
	ObservableEnergy
	// ObservablePhase is atan2(v, x).
	ObservablePhase
	// ObservableSwarmCoherence is 1/(1+var(x)) over the last up to 5
	// history entries, or 1.0 with fewer than 2 entries.
	ObservableSwarmCoherence

	// numObservables must stay last; it sizes the observable cache.
	numObservables
)

// String returns the observable's canonical name.
func (o Observable) String() string {
	switch o {
	case ObservablePosition:
		return "position"
	case ObservableVelocity:
		return "velocity"
	case ObservableEnergy:
		return "energy"
	case ObservablePhase:
		return "phase"
	case ObservableSwarmCoherence:
		return "swarm_coherence"
	default:
		return "position" // unknown observables default to x
	}
}

// DefaultObservables is the configured set of observables refreshed every
// step by Evolver.Step.
func DefaultObservables() []Observable {
	return []Observable{
		ObservablePosition,
		ObservableVelocity,
		ObservableEnergy,
		ObservablePhase,
		ObservableSwarmCoherence,
	}
}

// computeObservable evaluates an observable against an agent's position and
// a recent-history window (used only by ObservableSwarmCoherence). The
// prime-derived "velocity" seeds position.V rather than the agent's
// separate kinematic velocity record — so every observable here is a
// function of position's two axes, x and v, not of the (always-zero-
// seeded) kinematic velocity.
func computeObservable(o Observable, pos Point, recentX []float64) float64 {
	switch o {
	case ObservablePosition:
		return pos.X
	case ObservableVelocity:
		return pos.V
	case ObservableEnergy:
		return 0.5 * (pos.V*pos.V + pos.X*pos.X)
	case ObservablePhase:
		return math.Atan2(pos.V, pos.X)
	case ObservableSwarmCoherence:
		if len(recentX) < 2 {
			return 1.0
		}
		return 1.0 / (1.0 + variance(recentX))
	default:
		return pos.X
	}
}

// variance computes the population variance of a small float64 slice.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return sumSq / float64(len(xs))
}
