package integrators

import (
	"testing"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

type benchDynamics struct{}

func (b *benchDynamics) Dim() int { return 3 }
func (b *benchDynamics) Derive(x sim.State, t float64) sim.State {
	return sim.State{
		0.03*x[0] + 0.03*x[1]*x[0],
		0.08 * x[1] * (1 - x[1]),
		0.5 * x[2] * (1 - x[2]),
	}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &benchDynamics{}
	x := sim.State{50000, 0.5, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &benchDynamics{}
	x := sim.State{50000, 0.5, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	dyn := &benchDynamics{}
	x := sim.State{50000, 0.5, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0.01)
	}
}
