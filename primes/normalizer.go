package primes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/oates-lab/chaoswarm/internal/config"
)

// InitialDistribution is a pair of equal-length sequences {x_i}, {v_i}
// produced once per run by Normalizer.InitialConditions.
type InitialDistribution struct {
	X []float64
	V []float64
}

// Len returns N = len(X) = len(V).
func (d InitialDistribution) Len() int { return len(d.X) }

// StructuralAnalysis summarizes the spatial structure of a normalizer's
// prime-derived position table.
type StructuralAnalysis struct {
	MeanPosition   float64
	StdDevPosition float64
	Spread         float64 // max - min
	ChaosCoverage  float64 // Spread / (2*pi)
}

// Normalizer owns a fixed table of twin-prime pairs and generates batches
// of deterministic initial conditions by round-robin sampling
// TwinPrimePair. It exclusively owns its table: nothing outside this
// package mutates defaultTable or a Normalizer's copy of it.
type Normalizer struct {
	pairs []TwinPrimePair
	cfg   config.Prime
}

// New constructs a Normalizer from an explicit table of (lo, hi) pairs and
// configuration. An empty table is a programmer error.
func New(cfg config.Prime, table [][2]int) (*Normalizer, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	if err := cfg.NormalizeAndValidate(); err != nil {
		return nil, fmt.Errorf("normalizer config: %w", err)
	}

	pairs := make([]TwinPrimePair, 0, len(table))
	for _, lh := range table {
		pair, err := NewPairWithBase(lh[0], lh[1], cfg.BaseRadians)
		if err != nil {
			return nil, fmt.Errorf("building table entry (%d,%d): %w", lh[0], lh[1], err)
		}
		pairs = append(pairs, pair)
	}

	return &Normalizer{pairs: pairs, cfg: cfg}, nil
}

// NewDefault constructs a Normalizer from the built-in table
// (DefaultTable) and default configuration.
func NewDefault() (*Normalizer, error) {
	return New(config.DefaultPrime(), DefaultTable())
}

// Len returns the number of twin-prime pairs in the table.
func (n *Normalizer) Len() int { return len(n.pairs) }

// Pair returns the table entry reused for round-robin index i: for
// N > len(table), pairs are reused cyclically.
func (n *Normalizer) Pair(i int) TwinPrimePair {
	idx := i % len(n.pairs)
	return n.pairs[idx]
}

// Position performs a round-robin lookup into the table and returns the
// upper or lower derived position for index i.
func (n *Normalizer) Position(i int, isUpper bool) float64 {
	pair := n.Pair(i)
	if isUpper {
		return pair.PositionHi()
	}
	return pair.PositionLo()
}

// Velocity returns the round-robin velocity for index i, alternating
// between v_hi (even i) and v_lo (odd i) of the indexed pair.
func (n *Normalizer) Velocity(i int) float64 {
	pair := n.Pair(i)
	vLo, vHi := pair.VelocityPair(n.cfg.VelocityBase)
	if i%2 == 0 {
		return vHi
	}
	return vLo
}

// InitialConditions produces N (x, v) pairs by i = 0..N-1, alternating
// is_upper = (i mod 2 == 0) and calling Velocity(i). N must be positive.
func (n *Normalizer) InitialConditions(count int) (InitialDistribution, error) {
	if count <= 0 {
		return InitialDistribution{}, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	dist := InitialDistribution{
		X: make([]float64, count),
		V: make([]float64, count),
	}
	for i := range count {
		isUpper := i%2 == 0
		dist.X[i] = n.Position(i, isUpper)
		dist.V[i] = n.Velocity(i)
	}
	return dist, nil
}

// StructuralAnalysis computes {mean_position, stddev_position, spread,
// chaos_coverage} over every derived position in the table (both lo and hi
// members). Uses gonum's stat package rather than a hand-rolled
// accumulator.
func (n *Normalizer) StructuralAnalysis() StructuralAnalysis {
	positions := make([]float64, 0, len(n.pairs)*2)
	for _, pair := range n.pairs {
		positions = append(positions, pair.PositionLo(), pair.PositionHi())
	}

	if len(positions) == 0 {
		return StructuralAnalysis{}
	}

	mean := stat.Mean(positions, nil)
	stddev := stat.StdDev(positions, nil)

	min, max := positions[0], positions[0]
	for _, p := range positions {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	spread := max - min

	return StructuralAnalysis{
		MeanPosition:   mean,
		StdDevPosition: stddev,
		Spread:         spread,
		ChaosCoverage:  spread / (2 * math.Pi),
	}
}
