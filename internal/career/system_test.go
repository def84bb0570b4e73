package career

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

func newTestSystem(t *testing.T, p Params) *System {
	t.Helper()
	s, err := NewSystem(p, nil)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return s
}

func TestStatusRate_LogisticFixedPoints(t *testing.T) {
	s := newTestSystem(t, DefaultParams())

	for _, status := range []float64{0, 1} {
		x := sim.State{50000, status, 0.5}
		if rate := s.StatusRate(x, 0); rate != 0 {
			t.Errorf("expected zero status rate at status=%.0f, got %g", status, rate)
		}
	}
}

func TestResearchRate_LogisticFixedPoints(t *testing.T) {
	s := newTestSystem(t, DefaultParams())

	for _, research := range []float64{0, 1} {
		x := sim.State{50000, 0.5, research}
		if rate := s.ResearchRate(x, 0); rate != 0 {
			t.Errorf("expected zero research rate at research=%.0f, got %g", research, rate)
		}
	}
}

func TestDerive_ComponentOrder(t *testing.T) {
	s := newTestSystem(t, DefaultParams())
	x := sim.State{50000, 0.5, 0.5}

	dx := s.Derive(x, 0)

	if len(dx) != Dim {
		t.Fatalf("expected %d components, got %d", Dim, len(dx))
	}
	if dx[IPay] != s.PayRate(x, 0) {
		t.Error("pay rate not at index 0")
	}
	if dx[IStatus] != s.StatusRate(x, 0) {
		t.Error("status rate not at index 1")
	}
	if dx[IResearch] != s.ResearchRate(x, 0) {
		t.Error("research rate not at index 2")
	}
}

func TestDerive_DeterministicIsPure(t *testing.T) {
	s := newTestSystem(t, DefaultParams())
	x := sim.State{50000, 0.5, 0.5}

	first := s.Derive(x, 3.0)
	for i := 0; i < 100; i++ {
		again := s.Derive(x, 3.0)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("deterministic derivative changed between calls: %v vs %v", first, again)
			}
		}
	}
}

func TestDerive_StochasticVariesAcrossCalls(t *testing.T) {
	p := DefaultParams()
	p.Stochastic = true

	s, err := NewSystem(p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}

	x := sim.State{50000, 0.5, 0.5}
	first := s.Derive(x, 0)
	varied := false
	for i := 0; i < 50; i++ {
		again := s.Derive(x, 0)
		if again[IPay] != first[IPay] || again[IStatus] != first[IStatus] {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("stochastic derivative never varied across 50 calls")
	}
}

func TestPayRate_InflationDrawStaysInRange(t *testing.T) {
	p := Params{Stochastic: true}

	s, err := NewSystem(p, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}

	// With recognition from the draws zeroed out (status 0) and no
	// ceiling, rate/pay is exactly the drawn inflation.
	x := sim.State{1, 0, 0.5}
	for i := 0; i < 1000; i++ {
		infl := s.PayRate(x, 0)
		if infl < InflationLow || infl > InflationHigh {
			t.Fatalf("inflation draw %g outside [%g, %g]", infl, InflationLow, InflationHigh)
		}
	}
}

func TestPayRate_CeilingSaturation(t *testing.T) {
	p := DefaultParams()
	p.PayCeiling = 500000
	s := newTestSystem(t, p)

	atCeiling := sim.State{500000, 0.5, 0.5}
	if rate := s.PayRate(atCeiling, 0); rate != 0 {
		t.Errorf("expected zero pay growth at the ceiling, got %g", rate)
	}

	above := sim.State{600000, 0.5, 0.5}
	if rate := s.PayRate(above, 0); rate >= 0 {
		t.Errorf("expected negative pay growth above the ceiling, got %g", rate)
	}

	below := sim.State{50000, 0.5, 0.5}
	if rate := s.PayRate(below, 0); rate <= 0 {
		t.Errorf("expected positive pay growth below the ceiling, got %g", rate)
	}
}

func TestResearchRate_StatusLinked(t *testing.T) {
	p := DefaultParams()
	p.StatusLinkedBeta = true
	s := newTestSystem(t, p)

	low := s.ResearchRate(sim.State{50000, 0.2, 0.5}, 0)
	high := s.ResearchRate(sim.State{50000, 0.8, 0.5}, 0)

	if high <= low {
		t.Errorf("expected faster research growth at higher status: low=%g high=%g", low, high)
	}
}

func TestResolve_StepActivation(t *testing.T) {
	p := DefaultParams()
	p.ActivationYear = 10

	if got := p.Resolve(5, 0.03); got != 0 {
		t.Errorf("expected coefficient gated before activation, got %g", got)
	}
	if got := p.Resolve(15, 0.03); got != 0.03 {
		t.Errorf("expected base coefficient after activation, got %g", got)
	}

	p.ActivationYear = 0
	if got := p.Resolve(5, 0.03); got != 0.03 {
		t.Errorf("expected identity resolve without activation year, got %g", got)
	}
}

func TestScaled(t *testing.T) {
	p := DefaultParams()

	scaled, err := p.Scaled(CoeffBeta, 2.0)
	if err != nil {
		t.Fatalf("Scaled: %v", err)
	}
	if scaled.Beta != p.Beta*2 {
		t.Errorf("expected beta %g, got %g", p.Beta*2, scaled.Beta)
	}
	if scaled.Recognition != p.Recognition {
		t.Error("scaling beta changed recognition")
	}

	if _, err := p.Scaled("nonsense", 2.0); !errors.Is(err, ErrUnknownCoefficient) {
		t.Errorf("expected ErrUnknownCoefficient, got %v", err)
	}
}

func TestNewSystem_StochasticRequiresRand(t *testing.T) {
	p := DefaultParams()
	p.Stochastic = true

	if _, err := NewSystem(p, nil); !errors.Is(err, ErrRandSource) {
		t.Errorf("expected ErrRandSource, got %v", err)
	}
}

func TestValidateInitial(t *testing.T) {
	s := newTestSystem(t, DefaultParams())

	tests := []struct {
		name  string
		state sim.State
		valid bool
	}{
		{"ok", sim.State{50000, 0.5, 0.5}, true},
		{"zero pay", sim.State{0, 0.5, 0.5}, true},
		{"boundary", sim.State{50000, 0, 1}, true},
		{"negative pay", sim.State{-1, 0.5, 0.5}, false},
		{"status above one", sim.State{50000, 1.5, 0.5}, false},
		{"negative research", sim.State{50000, 0.5, -0.1}, false},
		{"wrong dimension", sim.State{50000, 0.5}, false},
	}

	for _, tt := range tests {
		err := s.ValidateInitial(tt.state)
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.valid && err != nil {
			var invalid *sim.InvalidStateError
			if !errors.As(err, &invalid) {
				t.Errorf("%s: expected InvalidStateError, got %T", tt.name, err)
			}
		}
	}
}

func TestRandomInitialState_Ranges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		x := RandomInitialState(rng, 50000)
		if x[IPay] != 50000 {
			t.Fatalf("expected fixed pay 50000, got %g", x[IPay])
		}
		if x[IStatus] < 0.05 || x[IStatus] > 0.5 {
			t.Fatalf("status %g outside [0.05, 0.5]", x[IStatus])
		}
		if x[IResearch] < 0 || x[IResearch] > 0.5 {
			t.Fatalf("research %g outside [0, 0.5]", x[IResearch])
		}
	}
}

func TestStatusRate_TeachingWeightComplement(t *testing.T) {
	p := Params{AlphaResearch: 0.4, AlphaTeaching: 0.4}
	s := newTestSystem(t, p)

	// With equal alphas the blend is independent of research level.
	a := s.StatusRate(sim.State{0, 0.5, 0.1}, 0)
	b := s.StatusRate(sim.State{0, 0.5, 0.9}, 0)
	if math.Abs(a-b) > 1e-12 {
		t.Errorf("expected research-independent rate with equal alphas: %g vs %g", a, b)
	}
}
