// Package analysis implements a read-only borrower of an evolver's agents
// that estimates a per-agent local Lyapunov surrogate, classifies the
// swarm as CHAOTIC or STABLE, and scores a weak path-prediction baseline.
// Mirrors the read-only monitoring shape of a convergence monitor that
// also observes agent history without mutating it.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/oates-lab/chaoswarm/swarmagent"
)

// Classification is the coarse chaos/stability verdict.
type Classification string

const (
	Chaotic Classification = "CHAOTIC"
	Stable  Classification = "STABLE"
)

// chaoticThreshold is the mean-lambda cutoff above which a swarm is
// classified CHAOTIC.
const chaoticThreshold = 0.1

// lyapunovEpsilon guards against division blow-up on near-zero successive
// differences: d1 <= 1e-10 skips the term rather than erroring.
const lyapunovEpsilon = 1e-10

// Report summarizes an Analyzer pass over a swarm.
type Report struct {
	PerAgentLambda     []float64
	MeanLambda         float64
	Classification     Classification
	PredictionAccuracy []float64 // per agent
	MeanAccuracy       float64
}

// Analyzer computes chaos metrics over a borrowed agent collection. It never
// mutates the agents it inspects.
type Analyzer struct{}

// New constructs a ChaosAnalyzer. It carries no state of its own; every
// call is a pure function of the agents passed to it.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze computes the local Lyapunov surrogate and path-prediction accuracy
// for every agent, then aggregates a swarm-wide classification.
func (a *Analyzer) Analyze(agents []*swarmagent.Agent) Report {
	lambdas := make([]float64, len(agents))
	accuracies := make([]float64, len(agents))

	for i, agent := range agents {
		path := agent.History().Snapshot()
		lambdas[i] = localLyapunov(path)
		accuracies[i] = pathPredictionAccuracy(path)
	}

	meanLambda := 0.0
	if len(lambdas) > 0 {
		meanLambda = stat.Mean(lambdas, nil)
	}

	meanAccuracy := 0.0
	if len(accuracies) > 0 {
		meanAccuracy = stat.Mean(accuracies, nil)
	}

	classification := Stable
	if meanLambda > chaoticThreshold {
		classification = Chaotic
	}

	return Report{
		PerAgentLambda:     lambdas,
		MeanLambda:         meanLambda,
		Classification:     classification,
		PredictionAccuracy: accuracies,
		MeanAccuracy:       meanAccuracy,
	}
}

// localLyapunov computes the mean log-ratio of successive first-differences
// on the x axis of path. This is a coarse surrogate, not a true maximal
// Lyapunov exponent — it measures successive-difference ratios on a 1-D
// projection. History shorter than 10 points returns 0.
func localLyapunov(path []swarmagent.Point) float64 {
	if len(path) < 10 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := 0; i <= len(path)-3; i++ {
		d1 := math.Abs(path[i+1].X - path[i].X)
		d2 := math.Abs(path[i+2].X - path[i+1].X)
		if d1 > lyapunovEpsilon {
			sum += math.Log(d2 / d1)
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// pathPredictionAccuracy scores the weak baseline predictor "next.x =
// current.x + 0.001" against the actual next point, over every consecutive
// triple in path. It exists to give the analyzer a concrete metric, not
// to be a serious predictor.
func pathPredictionAccuracy(path []swarmagent.Point) float64 {
	const (
		step      = 0.001
		tolerance = 0.1
	)

	if len(path) < 3 {
		return 0
	}

	correct := 0
	total := 0
	for i := 0; i <= len(path)-3; i++ {
		predicted := path[i].X + step
		if math.Abs(predicted-path[i+1].X) < tolerance {
			correct++
		}
		total++
	}

	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
