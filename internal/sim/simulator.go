package sim

import (
	"context"
	"fmt"
	"math"
)

// Simulator drives a Dynamics through an integrator and samples the
// trajectory at caller-requested times.
type Simulator struct {
	dyn        Dynamics
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn Dynamics, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over cfg's time span and returns the state at each
// eval time. A solver abort returns the partial trajectory wrapped in a
// *SimulationFailure; it is never silently replaced with defaults.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	evalTimes, err := s.resolveEvalTimes(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ValidateState {
		if v, ok := s.dyn.(Validator); ok {
			if err := v.ValidateInitial(x0); err != nil {
				return nil, err
			}
		}
		if !x0.IsValid() {
			return nil, &InvalidStateError{Reason: "NaN or Inf in initial state"}
		}
	}

	result := &Result{
		Times:   make([]float64, 0, len(evalTimes)),
		States:  make([]State, 0, len(evalTimes)),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := evalTimes[0]
	dt := cfg.Dt

	record := func(tt float64) {
		result.Times = append(result.Times, tt)
		result.States = append(result.States, x.Clone())
		for _, m := range s.metrics {
			m.Observe(x, tt)
		}
	}
	record(t)

	fail := func(werr error) error {
		s.finishMetrics(result)
		return &SimulationFailure{
			Step:    result.StepsTaken,
			Time:    t,
			Partial: result,
			Wrapped: werr,
		}
	}

	for _, target := range evalTimes[1:] {
		for t < target-1e-12 {
			select {
			case <-ctx.Done():
				return result, fail(ctx.Err())
			default:
			}

			h := dt
			if t+h > target {
				h = target - t
			}

			var newX State
			var took, nextDt float64
			var stepErr error

			if cfg.Adaptive {
				newX, took, nextDt, stepErr = s.adaptiveStep(x, t, h, cfg)
			} else {
				newX = s.integrator.Step(s.dyn, x, t, h)
				took = h
				nextDt = dt
			}

			if stepErr != nil {
				return result, fail(stepErr)
			}

			if cfg.ValidateState && !newX.IsValid() {
				return result, fail(fmt.Errorf("state diverged (NaN/Inf)"))
			}

			x = newX
			t += took
			result.StepsTaken++

			for _, obs := range s.observers {
				obs.OnStep(x, t)
			}

			if cfg.Adaptive {
				dt = math.Min(math.Max(nextDt, cfg.MinDt), cfg.MaxDt)
			}
		}
		t = target
		record(t)
	}

	s.finishMetrics(result)
	return result, nil
}

func (s *Simulator) finishMetrics(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) resolveEvalTimes(cfg Config) ([]float64, error) {
	evalTimes := cfg.EvalTimes
	if evalTimes == nil {
		if cfg.End <= cfg.Start {
			return nil, fmt.Errorf("%w: end %.4f not after start %.4f", ErrInvalidConfig, cfg.End, cfg.Start)
		}
		if cfg.EvalPoints < 2 {
			return nil, fmt.Errorf("%w: need at least 2 eval points, got %d", ErrInvalidConfig, cfg.EvalPoints)
		}
		evalTimes = Linspace(cfg.Start, cfg.End, cfg.EvalPoints)
	}
	if len(evalTimes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 eval times", ErrInvalidConfig)
	}
	for i := 1; i < len(evalTimes); i++ {
		if evalTimes[i] <= evalTimes[i-1] {
			return nil, fmt.Errorf("%w: eval times must be strictly increasing", ErrInvalidConfig)
		}
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidConfig)
	}
	return evalTimes, nil
}

// adaptiveStep takes one step of size at most dt and returns the new state,
// the step size actually taken, and the suggested next step. A rejected step
// retries at half the size, so the step taken can be smaller than requested;
// the caller must advance its clock by the returned size, not the request.
// Integrators that implement AdaptiveIntegrator supply their own error
// estimate; anything else falls back to step doubling.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, nextDt, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
		return newX, dt, nextDt, err
	}

	x1 := s.integrator.Step(s.dyn, x, t, dt)
	xHalf := s.integrator.Step(s.dyn, x, t, dt/2)
	x2 := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)

	err := x1.Sub(x2).Norm()

	if err > cfg.Tolerance {
		if dt/2 < cfg.MinDt {
			return nil, 0, 0, ErrStepTooSmall
		}
		return s.adaptiveStep(x, t, dt/2, cfg)
	}

	nextDt := dt
	if err < cfg.Tolerance/10 {
		nextDt = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, nextDt, nil
}
