package primes_test

import (
	"testing"

	"github.com/oates-lab/chaoswarm/primes"
)

// TestInitialConditionsIdempotent verifies repeated calls with the same
// count produce identical sequences.
func TestInitialConditionsIdempotent(t *testing.T) {
	n, err := primes.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}

	a, err := n.InitialConditions(20)
	if err != nil {
		t.Fatalf("InitialConditions: %v", err)
	}
	b, err := n.InitialConditions(20)
	if err != nil {
		t.Fatalf("InitialConditions: %v", err)
	}

	if len(a.X) != len(b.X) {
		t.Fatalf("length mismatch: %d vs %d", len(a.X), len(b.X))
	}
	for i := range a.X {
		if a.X[i] != b.X[i] || a.V[i] != b.V[i] {
			t.Fatalf("index %d: (%v,%v) != (%v,%v)", i, a.X[i], a.V[i], b.X[i], b.V[i])
		}
	}
}

// TestTableReuseCyclically verifies reuse beyond the table length.
// Round-robin table lookup has period tableLen, but is_upper alternates
// with period 2, so the combined (position, velocity) sequence repeats
// with period lcm(2, tableLen) — 2*tableLen for the odd-length built-in
// table.
func TestTableReuseCyclically(t *testing.T) {
	n, err := primes.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}

	period := 2 * n.Len()
	count := period + 5
	dist, err := n.InitialConditions(count)
	if err != nil {
		t.Fatalf("InitialConditions: %v", err)
	}
	if dist.Len() != count {
		t.Fatalf("Len() = %d, want %d", dist.Len(), count)
	}

	for i := 0; i < 5; i++ {
		if dist.X[i] != dist.X[i+period] {
			t.Fatalf("expected position repeat with period %d at offset %d", period, i)
		}
	}
}

func TestInitialConditionsRejectsNonPositiveCount(t *testing.T) {
	n, err := primes.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}
	if _, err := n.InitialConditions(0); err == nil {
		t.Fatal("expected error for count=0")
	}
}

func TestStructuralAnalysisChaosCoverage(t *testing.T) {
	n, err := primes.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault: %v", err)
	}

	sa := n.StructuralAnalysis()
	if sa.Spread < 0 {
		t.Fatalf("Spread should be non-negative, got %v", sa.Spread)
	}
	if sa.ChaosCoverage < 0 {
		t.Fatalf("ChaosCoverage should be non-negative, got %v", sa.ChaosCoverage)
	}
}
