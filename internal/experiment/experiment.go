// Package experiment wires a configuration into a runnable simulation: model
// parameters, integrator choice, metrics, and the seeded randomness source
// for stochastic variants.
package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/config"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

type Experiment struct {
	cfg      *config.Config
	seed     int64
	registry *Registry
}

func New(cfg *config.Config, seed int64) *Experiment {
	return &Experiment{
		cfg:      cfg,
		seed:     seed,
		registry: NewRegistry(),
	}
}

func (e *Experiment) Params() career.Params { return e.cfg.CareerParams() }

// Build returns the configured dynamics and integrator without running,
// for callers that drive the stepping themselves (the live view).
func (e *Experiment) Build() (sim.Dynamics, sim.Integrator, error) {
	params := e.cfg.CareerParams()

	var rng *rand.Rand
	if params.Stochastic {
		rng = rand.New(rand.NewSource(e.seed))
	}

	dyn, err := career.NewSystem(params, rng)
	if err != nil {
		return nil, nil, err
	}

	integ, err := e.registry.NewIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}

	return dyn, integ, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	params := e.cfg.CareerParams()

	var rng *rand.Rand
	if params.Stochastic {
		rng = rand.New(rand.NewSource(e.seed))
	}

	dyn, err := career.NewSystem(params, rng)
	if err != nil {
		return nil, err
	}

	integ, err := e.registry.NewIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	s := sim.New(dyn, integ)
	for _, m := range DefaultMetrics() {
		s.AddMetric(m)
	}

	return s.Run(ctx, e.cfg.InitialState(), e.cfg.SimConfig())
}

// RunEnsemble solves numRuns careers with randomized starting status and
// research levels, each from a seed derived off the experiment seed.
func (e *Experiment) RunEnsemble(ctx context.Context, numRuns int) ([]*sim.Result, error) {
	if numRuns < 1 {
		return nil, fmt.Errorf("experiment: need at least 1 run, got %d", numRuns)
	}

	params := e.cfg.CareerParams()
	factory, err := e.registry.IntegratorFactory(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	build := func(seed int64) sim.RunSpec {
		rng := rand.New(rand.NewSource(seed))
		x0 := career.RandomInitialState(rng, e.cfg.InitState.Pay)

		var sysRng *rand.Rand
		if params.Stochastic {
			sysRng = rng
		}
		// NewSystem only fails for a stochastic set without a generator,
		// and every member gets its own seeded generator here.
		dyn, _ := career.NewSystem(params, sysRng)
		return sim.RunSpec{Dyn: dyn, X0: x0}
	}

	ens := sim.NewEnsemble(factory, numRuns, e.seed, build).
		WithMetrics(DefaultMetrics)

	return ens.Run(ctx, e.cfg.SimConfig())
}
