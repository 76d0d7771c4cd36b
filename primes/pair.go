// Package primes implements a deterministic, reproducible phase-space
// coordinate generator: twin-prime pairs combined through a multi-factor
// weighted formula, and a normalizer that batches them into initial
// conditions for a swarm.
package primes

import (
	"fmt"
	"math"
)

const (
	// clampLo and clampHi bound every derived position.
	clampLo = 1.0
	clampHi = 4.0
)

// goldenRatio is phi, used in the chaos-seed formula.
var goldenRatio = (1 + math.Sqrt(5)) / 2

// TwinPrimePair is a reproducible phase-space generator built from a pair of
// twin primes (p_lo, p_hi) with p_hi - p_lo == 2. Every derived field is a
// pure function of (Lo, Hi), computed once at construction.
type TwinPrimePair struct {
	Lo int
	Hi int

	// Derived, computed once in NewPair.
	ratio      float64
	difference int
	chaosSeed  float64
	positionLo float64
	positionHi float64

	// clampedLo/clampedHi record whether computePosition actually had to
	// clamp the corresponding member's position into [1, 4]. This
	// should be statistically rare; frequent engagement indicates model
	// drift worth surfacing as a diagnostic.
	clampedLo bool
	clampedHi bool
}

// NewPair constructs a TwinPrimePair from (lo, hi). Both must be positive,
// lo < hi, and hi - lo must equal 2 (the twin-prime gap; the pair (3,5) is
// the conventional low-end member of the sequence and needs no special
// casing since it already satisfies hi-lo == 2). Malformed pairs are a
// programmer error and are rejected here rather than produce silently
// wrong geometry.
func NewPair(lo, hi int) (TwinPrimePair, error) {
	if lo <= 0 || hi <= 0 {
		return TwinPrimePair{}, fmt.Errorf("%w: lo=%d, hi=%d must be positive", ErrInvalidPair, lo, hi)
	}
	if lo >= hi {
		return TwinPrimePair{}, fmt.Errorf("%w: lo=%d must be less than hi=%d", ErrInvalidPair, lo, hi)
	}
	if hi-lo != 2 {
		return TwinPrimePair{}, fmt.Errorf("%w: hi-lo=%d, want 2", ErrInvalidPair, hi-lo)
	}

	p := TwinPrimePair{Lo: lo, Hi: hi}
	p.difference = hi - lo
	p.ratio = float64(hi) / float64(lo)
	p.chaosSeed = computeChaosSeed(lo, hi)
	p.positionLo, p.clampedLo = computePosition(lo, hi, false, p.chaosSeed, 2.0944)
	p.positionHi, p.clampedHi = computePosition(lo, hi, true, p.chaosSeed, 2.0944)

	return p, nil
}

// NewPairWithBase is like NewPair but lets the caller override the canonical
// attractor-center base (default 2.0944 radians, 120 degrees).
func NewPairWithBase(lo, hi int, baseRadians float64) (TwinPrimePair, error) {
	p, err := NewPair(lo, hi)
	if err != nil {
		return TwinPrimePair{}, err
	}
	p.positionLo, p.clampedLo = computePosition(lo, hi, false, p.chaosSeed, baseRadians)
	p.positionHi, p.clampedHi = computePosition(lo, hi, true, p.chaosSeed, baseRadians)
	return p, nil
}

// Ratio returns hi/lo.
func (p TwinPrimePair) Ratio() float64 { return p.ratio }

// Difference returns hi - lo (always 2, kept as a field for callers that
// want it without recomputing).
func (p TwinPrimePair) Difference() int { return p.difference }

// ChaosSeed returns the tanh-bounded seed in (-1, 1) used both in the
// position formula and as a standalone chaos indicator.
func (p TwinPrimePair) ChaosSeed() float64 { return p.chaosSeed }

// PositionLo returns the derived phase-space position for the lower prime.
func (p TwinPrimePair) PositionLo() float64 { return p.positionLo }

// PositionHi returns the derived phase-space position for the upper prime.
func (p TwinPrimePair) PositionHi() float64 { return p.positionHi }

// ClampedLo reports whether deriving PositionLo required clamping the
// position into [1, 4].
func (p TwinPrimePair) ClampedLo() bool { return p.clampedLo }

// ClampedHi reports whether deriving PositionHi required clamping the
// position into [1, 4].
func (p TwinPrimePair) ClampedHi() bool { return p.clampedHi }

// VelocityPair returns (v_lo, v_hi), the paired velocity perturbation
// derived from the pair's ratio and gap, offset by base.
func (p TwinPrimePair) VelocityPair(base float64) (vLo, vHi float64) {
	r := (p.ratio - 1) * 0.5
	d := float64(p.difference) / 100
	vLo = base + r*0.002 + d*0.001
	vHi = base - r*0.001 + d*0.002
	return vLo, vHi
}

// Describe returns a human-readable summary, in the vein of the
// synchronization-swarm code's String()-style debug helpers.
func (p TwinPrimePair) Describe() string {
	return fmt.Sprintf("twin-prime(%d,%d) ratio=%.4f seed=%.4f pos=[%.4f,%.4f]",
		p.Lo, p.Hi, p.ratio, p.chaosSeed, p.positionLo, p.positionHi)
}

// computeChaosSeed combines the pair's ratio and gap into a bounded chaos
// seed via a golden-ratio weighting and tanh squashing.
func computeChaosSeed(lo, hi int) float64 {
	ratio := float64(hi) / float64(lo)
	sRaw := ((ratio-1)*goldenRatio + float64(hi-lo)/10) / 10
	return math.Tanh(sRaw)
}

// computePosition derives a phase-space position for one member (lo or hi)
// of a twin-prime pair from a weighted combination of digit-sum, modulo,
// sqrt, and log factors plus the chaos seed. The bool result reports
// whether the resulting position actually had to be clamped into [1, 4].
func computePosition(lo, hi int, isUpper bool, chaosSeed, base float64) (float64, bool) {
	p := lo
	if isUpper {
		p = hi
	}

	digitFactor := float64(digitSum(p)) / 100
	moduloFactor := (float64(p%100) - 50) / 500
	sqrtFactor := (math.Sqrt(float64(p)) - 5) / 50
	logFactor := (math.Log(float64(p)) - 2) / 10

	combined := 0.30*digitFactor + 0.30*moduloFactor + 0.20*sqrtFactor + 0.20*logFactor

	twinBias := float64(hi-lo) / 20
	if isUpper {
		combined += 0.1 * twinBias
	} else {
		combined -= 0.1 * twinBias
	}

	combined += 0.2 * chaosSeed

	position := base + 0.1*combined
	clamped := clamp(position, clampLo, clampHi)
	return clamped, clamped != position
}

// digitSum returns the sum of the decimal digits of a positive integer.
func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
