package theorem

import (
	"fmt"

	"github.com/oates-lab/chaoswarm/internal/config"
	"github.com/oates-lab/chaoswarm/evolver"
	"github.com/oates-lab/chaoswarm/primes"
)

// OracleFactory builds the Oracle used by ensemble member runIndex. Each
// run gets its own call, so a factory can inject randomized, sigma-bounded
// oracle noise across runs — a fixed Oracle reused verbatim across every
// run would make every run identical and defeat the point of an
// ensemble.
type OracleFactory func(runIndex int) evolver.Oracle

// RunSpec parameterizes a single ensemble member.
type RunSpec struct {
	Cfg           config.Swarm
	Dist          primes.InitialDistribution
	OracleFactory OracleFactory
	Koopman       evolver.KoopmanEigenvalues
}

// RunEnsemble runs spec.Cfg.EnsembleRuns independent evolutions (each built
// fresh from spec.Dist, with a run-specific oracle from spec.OracleFactory)
// and validates the Oates bound over the resulting confidences: over
// K >= 30 runs, the empirical mean of C_p should satisfy
// mean(C_p) >= (1-epsilon) - 0.05. Each run executes spec.Cfg.Steps steps
// at spec.Cfg.StepSize.
func RunEnsemble(spec RunSpec) (EnsembleReport, error) {
	runs := spec.Cfg.EnsembleRuns
	if runs < 1 {
		runs = 1
	}

	factory := spec.OracleFactory
	if factory == nil {
		factory = func(int) evolver.Oracle { return evolver.ZeroOracle{} }
	}

	confidences := make([]evolver.Confidence, 0, runs)
	for i := 0; i < runs; i++ {
		ev, err := evolver.New(spec.Cfg, spec.Dist,
			evolver.WithOracle(factory(i)),
			evolver.WithKoopman(spec.Koopman),
		)
		if err != nil {
			return EnsembleReport{}, fmt.Errorf("ensemble run %d: %w", i, err)
		}

		if err := ev.Run(spec.Cfg.Steps, spec.Cfg.StepSize, spec.Cfg.MetricPeriod); err != nil {
			return EnsembleReport{}, fmt.Errorf("ensemble run %d: %w", i, err)
		}

		confidences = append(confidences, ev.SwarmConfidence())
	}

	return Validate(confidences, spec.Cfg.EnsembleTolerance), nil
}
