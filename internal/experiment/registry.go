package experiment

import (
	"fmt"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/integrators"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/metrics"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

type Registry struct {
	integrators map[string]func() sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() sim.Integrator),
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() sim.Integrator { return integrators.NewRK45() }

	return r
}

// IntegratorFactory returns a constructor rather than an instance, since
// some integrators carry scratch buffers and cannot be shared across runs.
func (r *Registry) IntegratorFactory(name string) (func() sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn, nil
}

func (r *Registry) NewIntegrator(name string) (sim.Integrator, error) {
	fn, err := r.IntegratorFactory(name)
	if err != nil {
		return nil, err
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics are the career outcome measures attached to every run.
func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewLifetimePay(),
		metrics.NewFinalPay(),
		metrics.NewPeakStatus(),
		metrics.NewBoundsViolations(1e-9),
	}
}
