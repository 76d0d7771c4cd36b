// Package random provides cryptographically secure random number generation,
// used by the theorem package's ensemble runner to inject bounded oracle
// noise across runs.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"sync"
)

// SecureRandom provides cryptographically secure random number generation
type SecureRandom struct {
	mu sync.Mutex
}

var defaultRandom = &SecureRandom{}

// Float64 returns a cryptographically secure random float64 in [0.0,1.0)
func Float64() float64 {
	return defaultRandom.Float64()
}

// Float64 returns a cryptographically secure random float64 in [0.0,1.0)
func (r *SecureRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b [8]byte
	_, err := rand.Read(b[:])
	if err != nil {
		// This should never happen with crypto/rand
		panic("crypto/rand failed: " + err.Error())
	}

	// Convert to uint64, mask to get 53 bits of precision (same as math/rand)
	u := binary.BigEndian.Uint64(b[:]) & ((1 << 53) - 1)
	// Convert to float64 in [0, 1)
	return float64(u) / float64(1<<53)
}

// Gaussian returns a standard-normal sample via the Box-Muller transform,
// built from two independent Float64 draws.
func Gaussian() float64 {
	return defaultRandom.Gaussian()
}

// Gaussian returns a standard-normal sample via the Box-Muller transform.
func (r *SecureRandom) Gaussian() float64 {
	u1 := r.Float64()
	if u1 == 0 {
		u1 = 1e-300 // avoid log(0)
	}
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
