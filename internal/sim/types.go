package sim

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type Dynamics interface {
	Derive(x State, t float64) State
	Dim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn Dynamics, x State, t, dt, tol float64) (State, float64, error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Validator is implemented by dynamics that can reject an initial state
// before any stepping happens.
type Validator interface {
	ValidateInitial(x State) error
}

type Config struct {
	Start         float64
	End           float64
	EvalTimes     []float64
	EvalPoints    int
	Dt            float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Start:         0,
		End:           40.0,
		EvalPoints:    1000,
		Dt:            0.05,
		Tolerance:     1e-6,
		MaxDt:         0.5,
		MinDt:         1e-8,
		Adaptive:      true,
		ValidateState: true,
	}
}

// Linspace returns n evenly spaced values covering [start, end] inclusive.
func Linspace(start, end float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = end
	return out
}

// Result holds one trajectory: the state sampled at each requested time.
type Result struct {
	Times      []float64
	States     []State
	Metrics    map[string]float64
	StepsTaken int
}

// Component extracts one state component as a series, in sample order.
func (r *Result) Component(idx int) []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}

// Final returns the last sampled state, or nil for an empty trajectory.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
