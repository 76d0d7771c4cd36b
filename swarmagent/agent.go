// Package swarmagent implements per-agent state (position, velocity,
// path history, confidence, observable cache) and the per-agent
// operations the swarm-Koopman evolution core drives every step.
package swarmagent

import (
	"fmt"
	"math"
	"sync"

	"go.uber.org/atomic"
)

// Agent is an autonomous entity advanced by an Evolver. Its mutable
// scalar fields use go.uber.org/atomic since the evolver mutates an
// agent's state every step while analysis and validation code
// concurrently borrow (read-only) the same fields.
type Agent struct {
	ID int

	posX atomic.Float64
	posV atomic.Float64
	velX atomic.Float64
	velV atomic.Float64

	confidence        atomic.Float64
	confidenceAlpha   float64 // EMA alpha, default 0.1
	confidenceAnomaly atomic.Bool

	history *PathHistory

	cacheMu sync.RWMutex
	cache   [numObservables]float64
}

// Option configures an Agent at construction.
type Option func(*Agent)

// New creates an agent with the provided options. Position and velocity
// default to the zero Point; confidence starts at 1.0.
func New(id int, opts ...Option) *Agent {
	a := &Agent{
		ID:              id,
		confidenceAlpha: 0.1,
		history:         NewPathHistory(100, 50),
	}
	a.confidence.Store(1.0)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithPosition sets the agent's initial position.
func WithPosition(p Point) Option {
	return func(a *Agent) {
		a.posX.Store(p.X)
		a.posV.Store(p.V)
	}
}

// WithVelocity sets the agent's initial kinematic velocity.
func WithVelocity(v Point) Option {
	return func(a *Agent) {
		a.velX.Store(v.X)
		a.velV.Store(v.V)
	}
}

// WithConfidenceAlpha overrides the EMA memory constant (default 0.1).
func WithConfidenceAlpha(alpha float64) Option {
	return func(a *Agent) {
		a.confidenceAlpha = alpha
	}
}

// WithHistoryPolicy overrides the path-history soft cap and post-truncation
// retained length (defaults 100 and 50).
func WithHistoryPolicy(cap, truncateTo int) Option {
	return func(a *Agent) {
		a.history = NewPathHistory(cap, truncateTo)
	}
}

// Position returns the agent's current position.
func (a *Agent) Position() Point {
	return Point{X: a.posX.Load(), V: a.posV.Load()}
}

// SetPosition updates the agent's position.
func (a *Agent) SetPosition(p Point) {
	a.posX.Store(p.X)
	a.posV.Store(p.V)
}

// Velocity returns the agent's current kinematic velocity.
func (a *Agent) Velocity() Point {
	return Point{X: a.velX.Load(), V: a.velV.Load()}
}

// SetVelocity updates the agent's kinematic velocity.
func (a *Agent) SetVelocity(v Point) {
	a.velX.Store(v.X)
	a.velV.Store(v.V)
}

// Confidence returns the agent's current confidence, always in [0, 1].
func (a *Agent) Confidence() float64 {
	return a.confidence.Load()
}

// History returns the agent's path history for read-only inspection by
// analysis and validation code; callers borrow, never mutate.
func (a *Agent) History() *PathHistory {
	return a.history
}

// Observe computes one of the closed set of observables and caches it
// under its own slot — unlike a single overwritten scalar field, each
// observable keeps its own cache entry, so a later call for a different
// observable cannot clobber an earlier one. Observe is pure on
// position/velocity/history and therefore idempotent between history
// updates.
func (a *Agent) Observe(o Observable) float64 {
	pos := a.Position()

	var recentX []float64
	if o == ObservableSwarmCoherence {
		recentX = a.history.RecentX(5)
	}

	value := computeObservable(o, pos, recentX)

	a.cacheMu.Lock()
	a.cache[o] = value
	a.cacheMu.Unlock()

	return value
}

// CachedObservable returns the last value computed by Observe for o,
// without recomputing it.
func (a *Agent) CachedObservable(o Observable) float64 {
	a.cacheMu.RLock()
	defer a.cacheMu.RUnlock()
	return a.cache[o]
}

// RecordHistory appends the agent's current position to its path history,
// enforcing the bounded-length policy.
func (a *Agent) RecordHistory() {
	a.history.Record(a.Position())
}

// UpdateConfidence applies the EMA confidence-update rule:
//
//	err   = mean(|predicted.X-actual.X|, |predicted.V-actual.V|)
//	c_new = exp(-err / h)
//	c     = alpha*c_new + (1-alpha)*c_current, clamped to [0, 1]
//
// h <= 0 is a programmer error and is rejected. err < 0 is impossible by
// construction (it is built from two absolute values), but c_new is
// defensively checked for NaN/overflow anyway, since that is the only
// numerical anomaly this formula could ever produce; ConfidenceAnomaly
// reports whether the most recent call hit that defensive branch.
func (a *Agent) UpdateConfidence(predicted, actual Point, h float64) error {
	if h <= 0 {
		return fmt.Errorf("%w: got %g", ErrNonPositiveStep, h)
	}

	err := (math.Abs(predicted.X-actual.X) + math.Abs(predicted.V-actual.V)) / 2

	cNew := math.Exp(-err / h)
	anomaly := math.IsNaN(cNew) || math.IsInf(cNew, 0)
	if anomaly {
		cNew = 0
	}
	a.confidenceAnomaly.Store(anomaly)

	current := a.confidence.Load()
	next := a.confidenceAlpha*cNew + (1-a.confidenceAlpha)*current

	a.confidence.Store(clamp01(next))
	return nil
}

// ConfidenceAnomaly reports whether the most recent UpdateConfidence call
// hit the defensive NaN/overflow branch on c_new.
func (a *Agent) ConfidenceAnomaly() bool {
	return a.confidenceAnomaly.Load()
}

// DistanceTo returns the Euclidean distance between this agent's position
// and other's, over the fixed {x, v} key set.
func (a *Agent) DistanceTo(other *Agent) float64 {
	p, q := a.Position(), other.Position()
	dx := p.X - q.X
	dv := p.V - q.V
	return math.Sqrt(dx*dx + dv*dv)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
