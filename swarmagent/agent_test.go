package swarmagent_test

import (
	"testing"

	"github.com/oates-lab/chaoswarm/swarmagent"
)

func TestNewAgentStartsAtUnitConfidence(t *testing.T) {
	a := swarmagent.New(0)
	if a.Confidence() != 1.0 {
		t.Fatalf("Confidence() = %v, want 1.0", a.Confidence())
	}
}

// TestConfidenceStaysBounded verifies confidence stays within [0,1] across
// a range of prediction errors and step sizes.
func TestConfidenceStaysBounded(t *testing.T) {
	a := swarmagent.New(0)

	cases := []struct {
		predicted, actual swarmagent.Point
		h                 float64
	}{
		{swarmagent.Point{X: 0, V: 0}, swarmagent.Point{X: 100, V: 100}, 1e-4},
		{swarmagent.Point{X: 1, V: 1}, swarmagent.Point{X: 1, V: 1}, 1e-4},
		{swarmagent.Point{X: -5, V: 5}, swarmagent.Point{X: 5, V: -5}, 1},
	}
	for _, c := range cases {
		if err := a.UpdateConfidence(c.predicted, c.actual, c.h); err != nil {
			t.Fatalf("UpdateConfidence: %v", err)
		}
		if a.Confidence() < 0 || a.Confidence() > 1 {
			t.Fatalf("confidence out of [0,1]: %v", a.Confidence())
		}
	}
}

func TestUpdateConfidenceRejectsNonPositiveStep(t *testing.T) {
	a := swarmagent.New(0)
	if err := a.UpdateConfidence(swarmagent.Point{}, swarmagent.Point{}, 0); err == nil {
		t.Fatal("expected error for h=0")
	}
	if err := a.UpdateConfidence(swarmagent.Point{}, swarmagent.Point{}, -1); err == nil {
		t.Fatal("expected error for negative h")
	}
}

// TestHistoryBound verifies history never exceeds 100, and after
// truncation never drops below 50.
func TestHistoryBound(t *testing.T) {
	a := swarmagent.New(0)
	for i := 0; i < 250; i++ {
		a.SetPosition(swarmagent.Point{X: float64(i)})
		a.RecordHistory()

		l := a.History().Len()
		if l > 100 {
			t.Fatalf("history length %d exceeds cap 100 at step %d", l, i)
		}
	}
	if l := a.History().Len(); l < 50 || l > 100 {
		t.Fatalf("final history length %d, want [50,100]", l)
	}
}

// TestObserveIdempotentBetweenHistoryUpdates verifies Observe is pure
// between history updates.
func TestObserveIdempotentBetweenHistoryUpdates(t *testing.T) {
	a := swarmagent.New(0, swarmagent.WithPosition(swarmagent.Point{X: 2.0, V: 1.5}))

	first := a.Observe(swarmagent.ObservableEnergy)
	second := a.Observe(swarmagent.ObservableEnergy)
	if first != second {
		t.Fatalf("expected idempotent Observe, got %v then %v", first, second)
	}
}

func TestObserveCachesPerObservable(t *testing.T) {
	a := swarmagent.New(0, swarmagent.WithPosition(swarmagent.Point{X: 2.0, V: 1.0}))

	posVal := a.Observe(swarmagent.ObservablePosition)
	velVal := a.Observe(swarmagent.ObservableVelocity)

	if a.CachedObservable(swarmagent.ObservablePosition) != posVal {
		t.Fatalf("cached position observable clobbered by later Observe call")
	}
	if a.CachedObservable(swarmagent.ObservableVelocity) != velVal {
		t.Fatalf("cached velocity observable mismatch")
	}
}

func TestDistanceToIsEuclideanOverPosition(t *testing.T) {
	a := swarmagent.New(0, swarmagent.WithPosition(swarmagent.Point{X: 0, V: 0}))
	b := swarmagent.New(1, swarmagent.WithPosition(swarmagent.Point{X: 3, V: 4}))

	if d := a.DistanceTo(b); d != 5 {
		t.Fatalf("DistanceTo = %v, want 5", d)
	}
}
