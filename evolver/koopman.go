package evolver

import "github.com/oates-lab/chaoswarm/swarmagent"

// KoopmanEigenvalues is the degenerate, linear Koopman predictor used by the
// evolution core: per-axis scalar multipliers applied to the current
// position to produce the "next observable" prediction compared against
// Oracle truth. The zero value is the identity predictor (both axes pass
// through unchanged) — a full data-driven Koopman mode decomposition is
// out of scope here.
type KoopmanEigenvalues struct {
	LambdaX float64
	HasX    bool

	LambdaV float64
	HasV    bool
}

// Predict applies the configured per-axis eigenvalues to pos. An axis with
// HasX/HasV false passes through unchanged (identity).
func (k KoopmanEigenvalues) Predict(pos swarmagent.Point) swarmagent.Point {
	px := pos.X
	if k.HasX {
		px = k.LambdaX * pos.X
	}

	pv := pos.V
	if k.HasV {
		pv = k.LambdaV * pos.V
	}

	return swarmagent.Point{X: px, V: pv}
}
