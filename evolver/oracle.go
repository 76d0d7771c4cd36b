package evolver

import (
	"github.com/oates-lab/chaoswarm/internal/random"
	"github.com/oates-lab/chaoswarm/swarmagent"
)

// Oracle supplies the "true" next state used for per-agent confidence
// computation. Its contract: a pure function of step index, returning
// both x and v as a swarmagent.Point. Implementations range from a
// trivial all-zeros stand-in (confidence then reflects only predictor
// self-consistency), to a cached RK4 benchmark, to an injected analytic
// solution — the core never assumes which.
type Oracle interface {
	State(stepIndex int) swarmagent.Point
}

// ZeroOracle always returns the zero Point, the trivial default:
// confidence under it measures only whether the (degenerate, identity)
// Koopman predictor agrees with "nothing moved".
type ZeroOracle struct{}

// State implements Oracle.
func (ZeroOracle) State(int) swarmagent.Point { return swarmagent.Point{} }

// FuncOracle adapts a plain function to the Oracle interface.
type FuncOracle func(stepIndex int) swarmagent.Point

// State implements Oracle.
func (f FuncOracle) State(stepIndex int) swarmagent.Point { return f(stepIndex) }

// TrackingOracle returns, at every step, exactly what the configured
// Koopman eigenvalues would predict from agent's current position — i.e.
// the oracle "tracks" the predictor. With an identity predictor,
// confidences should saturate at 1.0 within the EMA time constant, since
// predicted and actual then always agree by construction.
func TrackingOracle(agent *swarmagent.Agent, koopman KoopmanEigenvalues) Oracle {
	return FuncOracle(func(int) swarmagent.Point {
		return koopman.Predict(agent.Position())
	})
}

// NoisyZeroOracle returns an Oracle centered on the zero Point, perturbed
// per axis by independent Gaussian noise scaled by sigma. Each call, and
// each oracle instance, draws fresh noise, so repeated ensemble runs
// built from the same NoisyZeroOracle still vary run to run.
func NoisyZeroOracle(sigma float64) Oracle {
	return FuncOracle(func(int) swarmagent.Point {
		return swarmagent.Point{
			X: random.Gaussian() * sigma,
			V: random.Gaussian() * sigma,
		}
	})
}
