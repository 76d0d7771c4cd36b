package evolver_test

import (
	"testing"

	"github.com/oates-lab/chaoswarm/evolver"
	"github.com/oates-lab/chaoswarm/swarmagent"
)

func TestIdentityKoopmanIsZeroValue(t *testing.T) {
	var k evolver.KoopmanEigenvalues
	pos := swarmagent.Point{X: 2.5, V: -1.25}

	pred := k.Predict(pos)
	if pred != pos {
		t.Fatalf("zero-value KoopmanEigenvalues should be the identity predictor: got %+v, want %+v", pred, pos)
	}
}

func TestPerAxisEigenvalues(t *testing.T) {
	k := evolver.KoopmanEigenvalues{LambdaX: 2.0, HasX: true, LambdaV: 0.5, HasV: true}
	pos := swarmagent.Point{X: 3.0, V: 4.0}

	pred := k.Predict(pos)
	if pred.X != 6.0 {
		t.Fatalf("pred.X = %v, want 6.0", pred.X)
	}
	if pred.V != 2.0 {
		t.Fatalf("pred.V = %v, want 2.0", pred.V)
	}
}
