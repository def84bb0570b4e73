package integrators

import (
	"math"
	"testing"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Dim() int { return 2 }

func (h *harmonicOscillator) Derive(x sim.State, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x sim.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x0 := sim.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewEuler()

	x := sim.State{1.0, 0.0}
	dt := 0.001
	steps := 1000

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	if math.Abs(x[0]-expectedX) > 1e-2 {
		t.Errorf("position error too large for euler: got %.6f, expected %.6f", x[0], expectedX)
	}
}
