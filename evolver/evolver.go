// Package evolver implements the time-stepped core that owns N agents,
// applies Reynolds-style flocking dynamics, runs the degenerate Koopman
// predictor against an injected Oracle, and aggregates per-agent
// confidence into a swarm-wide bound.
package evolver

import (
	"fmt"
	"math"
	"time"

	"github.com/oates-lab/chaoswarm/internal/config"
	"github.com/oates-lab/chaoswarm/observation"
	"github.com/oates-lab/chaoswarm/primes"
	"github.com/oates-lab/chaoswarm/swarmagent"
)

// Confidence is the transient swarm-wide confidence summary.
type Confidence struct {
	Cp            float64
	AvgConfidence float64
	Epsilon       float64
	Bound         float64
}

// Evolver owns a fixed collection of agents and advances them jointly under
// flocking dynamics and Koopman-predicted confidence feedback. It exclusively
// owns its agents; analysis and validation code only ever borrow them via
// Agents().
type Evolver struct {
	cfg     config.Swarm
	agents  []*swarmagent.Agent
	koopman KoopmanEigenvalues
	oracle  Oracle
	emitter observation.Emitter

	stepIndex int
}

// Option configures an Evolver at construction.
type Option func(*Evolver)

// WithKoopman overrides the degenerate-identity default Koopman predictor.
func WithKoopman(k KoopmanEigenvalues) Option {
	return func(e *Evolver) { e.koopman = k }
}

// WithOracle overrides the default ZeroOracle.
func WithOracle(o Oracle) Option {
	return func(e *Evolver) { e.oracle = o }
}

// WithEmitter attaches an observation.Emitter that receives a step_metric
// record every metric_period steps during Run.
func WithEmitter(em observation.Emitter) Option {
	return func(e *Evolver) { e.emitter = em }
}

// New constructs an Evolver by initializing N agents from dist. The
// distribution's x seeds agent position.X, and its v seeds position.V —
// kinematic velocity starts at the zero Point for every agent; this is a
// deliberate modeling choice, not an oversight, since the flocking
// forces (cohesion, separation, alignment) are what give kinematic
// velocity its own dynamics.
func New(cfg config.Swarm, dist primes.InitialDistribution, opts ...Option) (*Evolver, error) {
	if err := cfg.NormalizeAndValidate(dist.Len()); err != nil {
		return nil, err
	}
	if dist.Len() <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAgentCount, dist.Len())
	}

	agents := make([]*swarmagent.Agent, dist.Len())
	for i := range agents {
		agents[i] = swarmagent.New(i,
			swarmagent.WithPosition(swarmagent.Point{X: dist.X[i], V: dist.V[i]}),
			swarmagent.WithVelocity(swarmagent.Point{}),
			swarmagent.WithConfidenceAlpha(cfg.ConfidenceAlpha),
			swarmagent.WithHistoryPolicy(cfg.HistoryCap, cfg.HistoryTruncateTo),
		)
	}

	e := &Evolver{
		cfg:     cfg,
		agents:  agents,
		koopman: KoopmanEigenvalues{}, // identity predictor by default
		oracle:  ZeroOracle{},
		emitter: observation.NopEmitter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Agents returns the evolver's agent collection for read-only inspection by
// analysis and validation code. Callers must not mutate agent state
// through this slice.
func (e *Evolver) Agents() []*swarmagent.Agent {
	return e.agents
}

// StepIndex returns the number of steps already applied.
func (e *Evolver) StepIndex() int { return e.stepIndex }

// Step performs one time step: refresh every agent's observable cache and
// record history from the step-start snapshot, apply flocking forces,
// then (for step_index > 0) run the Koopman predictor against the oracle
// and update confidences. h must be positive.
func (e *Evolver) Step(h float64) error {
	if h <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidStepSize, h)
	}

	for _, a := range e.agents {
		for _, o := range swarmagent.DefaultObservables() {
			a.Observe(o)
		}
		a.RecordHistory()
	}

	e.applyFlockingForces(h)

	if e.stepIndex > 0 {
		truth := e.oracle.State(e.stepIndex + 1)
		for _, a := range e.agents {
			pred := e.koopman.Predict(a.Position())
			if err := a.UpdateConfidence(pred, truth, h); err != nil {
				return err
			}
			if a.ConfidenceAnomaly() {
				e.emitDiagnostic(a.ID, "confidence_exp_overflow", pred, truth)
			}
			e.emitConfidence(a, pred, truth)
		}
	}

	e.stepIndex++
	return nil
}

// applyFlockingForces implements the Reynolds-style cohesion / separation /
// alignment update. Every force is computed from a snapshot of all agents'
// positions and velocities taken before this call touches any agent;
// positions and velocities are written back only after every agent's new
// values have been computed, so the result never depends on agent
// iteration order.
func (e *Evolver) applyFlockingForces(h float64) {
	n := len(e.agents)
	if n == 0 {
		return
	}

	posSnapshot := make([]swarmagent.Point, n)
	velSnapshot := make([]swarmagent.Point, n)
	for i, a := range e.agents {
		posSnapshot[i] = a.Position()
		velSnapshot[i] = a.Velocity()
	}

	newVel := make([]swarmagent.Point, n)
	newPos := make([]swarmagent.Point, n)

	for i := range e.agents {
		var cohesion, separation, alignment swarmagent.Point
		neighborCount := 0

		for j := range e.agents {
			if i == j {
				continue
			}
			dx := posSnapshot[j].X - posSnapshot[i].X
			dv := posSnapshot[j].V - posSnapshot[i].V
			dist := euclid(dx, dv)
			if dist >= e.cfg.NeighborRadius {
				continue
			}
			neighborCount++

			cohesion.X += dx * e.cfg.CohesionWeight
			cohesion.V += dv * e.cfg.CohesionWeight

			alignment.X += (velSnapshot[j].X - velSnapshot[i].X) * e.cfg.AlignmentWeight
			alignment.V += (velSnapshot[j].V - velSnapshot[i].V) * e.cfg.AlignmentWeight

			if dist < e.cfg.SeparationRadius && dist > 0 {
				separation.X += (posSnapshot[i].X - posSnapshot[j].X) / dist * e.cfg.SeparationWeight
				separation.V += (posSnapshot[i].V - posSnapshot[j].V) / dist * e.cfg.SeparationWeight
			}
		}

		if neighborCount > 0 {
			cohesion = cohesion.Scale(1 / float64(neighborCount))
			separation = separation.Scale(1 / float64(neighborCount))
			alignment = alignment.Scale(1 / float64(neighborCount))
		}

		force := cohesion.Add(separation).Add(alignment)

		v := velSnapshot[i]
		v.X = (v.X + force.X*h) * e.cfg.Damping
		v.V = (v.V + force.V*h) * e.cfg.Damping
		newVel[i] = v

		p := posSnapshot[i]
		p.X += v.X * h
		p.V += v.V * h
		newPos[i] = p
	}

	for i, a := range e.agents {
		a.SetVelocity(newVel[i])
		a.SetPosition(newPos[i])
	}
}

func euclid(dx, dv float64) float64 {
	return math.Sqrt(dx*dx + dv*dv)
}

// AverageConfidence returns the arithmetic mean of per-agent confidence.
func (e *Evolver) AverageConfidence() float64 {
	if len(e.agents) == 0 {
		return 0
	}
	var sum float64
	for _, a := range e.agents {
		sum += a.Confidence()
	}
	return sum / float64(len(e.agents))
}

// SwarmConfidence computes the aggregate bound:
//
//	mean_c = average_confidence()
//	eps_h  = cfg.EpsilonH
//	eps_N  = 1/N
//	C_p    = max(0, mean_c - (eps_h + eps_N))
func (e *Evolver) SwarmConfidence() Confidence {
	n := len(e.agents)
	meanC := e.AverageConfidence()

	epsN := 1.0
	if n > 0 {
		epsN = 1 / float64(n)
	}
	epsilon := e.cfg.EpsilonH + epsN

	cp := meanC - epsilon
	if cp < 0 {
		cp = 0
	}

	return Confidence{
		Cp:            cp,
		AvgConfidence: meanC,
		Epsilon:       epsilon,
		Bound:         1 - epsilon,
	}
}

// Run performs T steps, emitting a step_metric record every metric_period
// steps. metric_period <= 0 disables periodic emission; the final step's
// metric is always emitted regardless.
func (e *Evolver) Run(steps int, h float64, metricPeriod int) error {
	for t := range steps {
		if err := e.Step(h); err != nil {
			return err
		}

		last := t == steps-1
		due := metricPeriod > 0 && (t+1)%metricPeriod == 0
		if due || last {
			e.emitStepMetric()
		}
	}
	return nil
}

// emitConfidence emits the per-agent observation record carried every step
// an agent's confidence is updated: the per-step per-agent stream alongside
// the system-level step_metric stream emitted from Run.
func (e *Evolver) emitConfidence(a *swarmagent.Agent, predicted, actual swarmagent.Point) {
	e.emitter.Emit(observation.Record{
		Timestamp: time.Now().UTC(),
		Step:      e.stepIndex,
		AgentID:   a.ID,
		Kind:      observation.KindConfidence,
		Payload: map[string]any{
			"confidence": a.Confidence(),
			"predicted":  predicted,
			"actual":     actual,
		},
	})
}

// emitDiagnostic surfaces a numerical anomaly as a diagnostic observation
// record: log-and-continue, never abort the run over it.
func (e *Evolver) emitDiagnostic(agentID int, reason string, predicted, actual swarmagent.Point) {
	e.emitter.Emit(observation.Record{
		Timestamp: time.Now().UTC(),
		Step:      e.stepIndex,
		AgentID:   agentID,
		Kind:      observation.KindDiagnostic,
		Payload: map[string]any{
			"reason":    reason,
			"predicted": predicted,
			"actual":    actual,
		},
	})
}

func (e *Evolver) emitStepMetric() {
	sc := e.SwarmConfidence()
	e.emitter.Emit(observation.Record{
		Timestamp: time.Now().UTC(),
		Step:      e.stepIndex,
		AgentID:   observation.SystemAgentID,
		Kind:      observation.KindStepMetric,
		Payload: map[string]any{
			"avg_confidence":   sc.AvgConfidence,
			"swarm_confidence": sc.Cp,
			"epsilon":          sc.Epsilon,
			"bound":            sc.Bound,
		},
	})
}
