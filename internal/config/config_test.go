package config_test

import (
	"testing"

	"github.com/oates-lab/chaoswarm/internal/config"
)

func TestDefaultSwarmValidates(t *testing.T) {
	cfg := config.DefaultSwarm()
	if err := cfg.Validate(8); err != nil {
		t.Fatalf("DefaultSwarm should validate: %v", err)
	}
}

func TestSwarmValidateRejectsSeparationExceedingNeighbor(t *testing.T) {
	cfg := config.DefaultSwarm()
	cfg.SeparationRadius = cfg.NeighborRadius + 1
	if err := cfg.Validate(8); err == nil {
		t.Fatal("expected error when SeparationRadius > NeighborRadius")
	}
}

func TestSwarmValidateRejectsNonPositiveAgentCount(t *testing.T) {
	cfg := config.DefaultSwarm()
	if err := cfg.Validate(0); err == nil {
		t.Fatal("expected error for numAgents=0")
	}
}

func TestSwarmNormalizeAndValidateFillsZeroFields(t *testing.T) {
	var cfg config.Swarm
	if err := cfg.NormalizeAndValidate(8); err != nil {
		t.Fatalf("NormalizeAndValidate: %v", err)
	}
	want := config.DefaultSwarm()
	if cfg != want {
		t.Fatalf("normalized zero-value config = %+v, want %+v", cfg, want)
	}
}

func TestAutoScaleSwarmTightensForLargeSwarms(t *testing.T) {
	small := config.AutoScaleSwarm(10)
	large := config.AutoScaleSwarm(500)

	if large.NeighborRadius >= small.NeighborRadius {
		t.Fatalf("expected large-swarm neighbor radius to tighten: small=%v large=%v",
			small.NeighborRadius, large.NeighborRadius)
	}
}

func TestDefaultPrimeValidates(t *testing.T) {
	p := config.DefaultPrime()
	if err := p.Validate(); err != nil {
		t.Fatalf("DefaultPrime should validate: %v", err)
	}
}

func TestPrimeValidateRejectsNegativeVelocityBase(t *testing.T) {
	p := config.DefaultPrime()
	p.VelocityBase = -1
	if err := p.Validate(); err == nil {
		t.Fatal("expected error for negative VelocityBase")
	}
}
