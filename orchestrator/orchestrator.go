// Package orchestrator wires the prime-structured initial-condition
// generator, the swarm-Koopman evolution core, the chaos analyzer, and the
// theorem validator into a single demonstration run. It emits the init,
// prime_pair, and final_metric observation records, plus a diagnostic
// record for any engaged position clamp; step_metric and confidence
// records are emitted by the evolver itself during Run.
package orchestrator

import (
	"fmt"
	"time"

	"github.com/oates-lab/chaoswarm/analysis"
	"github.com/oates-lab/chaoswarm/evolver"
	"github.com/oates-lab/chaoswarm/internal/config"
	"github.com/oates-lab/chaoswarm/observation"
	"github.com/oates-lab/chaoswarm/primes"
	"github.com/oates-lab/chaoswarm/theorem"
)

// FinalReport is the run's terminal summary.
type FinalReport struct {
	SwarmConfidence         float64
	AvgConfidence           float64
	Epsilon                 float64
	Bound                   float64
	BoundHolds              bool // single-run check only; see theorem.RunEnsemble for the real validation
	MeanLyapunov            float64
	Classification          analysis.Classification
	PrimeStructuralAnalysis primes.StructuralAnalysis
}

// Orchestrator owns the Normalizer, Evolver, Analyzer, and Validator for a
// single run; its lifetime bounds theirs.
type Orchestrator struct {
	normalizer *primes.Normalizer
	analyzer   *analysis.Analyzer
	emitter    observation.Emitter
}

// Option configures an Orchestrator at construction.
type Option func(*Orchestrator)

// WithEmitter attaches an observation.Emitter receiving every record kind
// emitted over the run: init, prime_pair, step_metric, confidence,
// diagnostic, and final_metric.
func WithEmitter(em observation.Emitter) Option {
	return func(o *Orchestrator) { o.emitter = em }
}

// WithNormalizer overrides the default built-in prime table and
// configuration.
func WithNormalizer(n *primes.Normalizer) Option {
	return func(o *Orchestrator) { o.normalizer = n }
}

// New constructs an Orchestrator. Without WithNormalizer, it uses
// primes.NewDefault().
func New(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		analyzer: analysis.New(),
		emitter:  observation.NopEmitter{},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.normalizer == nil {
		n, err := primes.NewDefault()
		if err != nil {
			return nil, fmt.Errorf("default normalizer: %w", err)
		}
		o.normalizer = n
	}
	return o, nil
}

// Run performs one full demonstration run: generate initial conditions,
// initialize and evolve the swarm, analyze chaos metrics, and validate the
// theorem bound.
func (o *Orchestrator) Run(numAgents, numSteps int, stepSize float64, metricPeriod int, evolverOpts ...evolver.Option) (FinalReport, error) {
	o.emitInit(numAgents, numSteps, stepSize)

	dist, err := o.normalizer.InitialConditions(numAgents)
	if err != nil {
		return FinalReport{}, fmt.Errorf("initial conditions: %w", err)
	}
	o.emitPrimePairs(numAgents)

	cfg := config.AutoScaleSwarm(numAgents)
	cfg.Steps = numSteps
	cfg.StepSize = stepSize
	cfg.MetricPeriod = metricPeriod

	ev, err := evolver.New(cfg, dist, append([]evolver.Option{evolver.WithEmitter(o.emitter)}, evolverOpts...)...)
	if err != nil {
		return FinalReport{}, fmt.Errorf("evolver: %w", err)
	}

	if err := ev.Run(numSteps, stepSize, metricPeriod); err != nil {
		return FinalReport{}, fmt.Errorf("run: %w", err)
	}

	chaosReport := o.analyzer.Analyze(ev.Agents())
	sc := ev.SwarmConfidence()
	bound := theorem.Check(sc)

	report := FinalReport{
		SwarmConfidence:         sc.Cp,
		AvgConfidence:           sc.AvgConfidence,
		Epsilon:                 sc.Epsilon,
		Bound:                   sc.Bound,
		BoundHolds:              bound.Holds,
		MeanLyapunov:            chaosReport.MeanLambda,
		Classification:          chaosReport.Classification,
		PrimeStructuralAnalysis: o.normalizer.StructuralAnalysis(),
	}

	o.emitFinal(report)

	return report, nil
}

func (o *Orchestrator) emitInit(numAgents, numSteps int, stepSize float64) {
	o.emitter.Emit(observation.Record{
		Timestamp: time.Now().UTC(),
		Step:      0,
		AgentID:   observation.SystemAgentID,
		Kind:      observation.KindInit,
		Payload: map[string]any{
			"num_agents": numAgents,
			"num_steps":  numSteps,
			"step_size":  stepSize,
		},
	})
}

func (o *Orchestrator) emitPrimePairs(numAgents int) {
	for i := range numAgents {
		pair := o.normalizer.Pair(i)
		o.emitter.Emit(observation.Record{
			Timestamp: time.Now().UTC(),
			Step:      0,
			AgentID:   i,
			Kind:      observation.KindPrimePair,
			Payload: map[string]any{
				"lo":         pair.Lo,
				"hi":         pair.Hi,
				"ratio":      pair.Ratio(),
				"chaos_seed": pair.ChaosSeed(),
			},
		})

		if pair.ClampedLo() {
			o.emitPositionClampDiagnostic(i, pair, false)
		}
		if pair.ClampedHi() {
			o.emitPositionClampDiagnostic(i, pair, true)
		}
	}
}

// emitPositionClampDiagnostic surfaces an engaged position clamp as a
// diagnostic observation record. The clamp should be statistically rare;
// frequent engagement indicates model drift worth surfacing.
func (o *Orchestrator) emitPositionClampDiagnostic(agentID int, pair primes.TwinPrimePair, isUpper bool) {
	position := pair.PositionLo()
	if isUpper {
		position = pair.PositionHi()
	}
	o.emitter.Emit(observation.Record{
		Timestamp: time.Now().UTC(),
		Step:      0,
		AgentID:   agentID,
		Kind:      observation.KindDiagnostic,
		Payload: map[string]any{
			"reason":   "position_clamp",
			"is_upper": isUpper,
			"position": position,
			"lo":       pair.Lo,
			"hi":       pair.Hi,
		},
	})
}

func (o *Orchestrator) emitFinal(report FinalReport) {
	o.emitter.Emit(observation.Record{
		Timestamp: time.Now().UTC(),
		Step:      0,
		AgentID:   observation.SystemAgentID,
		Kind:      observation.KindFinalMetric,
		Payload: map[string]any{
			"swarm_confidence": report.SwarmConfidence,
			"avg_confidence":   report.AvgConfidence,
			"epsilon":          report.Epsilon,
			"bound":            report.Bound,
			"bound_holds":      report.BoundHolds,
			"mean_lyapunov":    report.MeanLyapunov,
			"classification":   string(report.Classification),
		},
	})
}
