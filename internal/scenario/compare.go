// Package scenario runs parameter sets side by side on a shared time grid to
// quantify the outcome gap attributable to a single coefficient, e.g. two
// careers differing only in the recognition coefficient.
package scenario

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

// Scenario is one named parameter set in a comparison.
type Scenario struct {
	Name   string
	Params career.Params
	Seed   int64
}

// Comparison holds trajectories for each scenario over one shared time grid.
type Comparison struct {
	Times   []float64
	Names   []string
	Results map[string]*sim.Result
}

// Pay returns the pay series for a named scenario, nil if unknown.
func (c *Comparison) Pay(name string) []float64 {
	r, ok := c.Results[name]
	if !ok {
		return nil
	}
	return r.Component(career.IPay)
}

// PayGap returns Pay(a) - Pay(b) at each shared eval time.
func (c *Comparison) PayGap(a, b string) []float64 {
	payA, payB := c.Pay(a), c.Pay(b)
	if payA == nil || payB == nil || len(payA) != len(payB) {
		return nil
	}
	gap := make([]float64, len(payA))
	for i := range payA {
		gap[i] = payA[i] - payB[i]
	}
	return gap
}

// Compare solves every scenario from the same initial state over the same
// eval times. Runs are independent; a failing scenario aborts the comparison
// with its error rather than filling in a placeholder.
func Compare(ctx context.Context, scenarios []Scenario, x0 sim.State, cfg sim.Config, newIntegrator func() sim.Integrator) (*Comparison, error) {
	if len(scenarios) < 2 {
		return nil, fmt.Errorf("scenario: need at least 2 scenarios, got %d", len(scenarios))
	}

	if cfg.EvalTimes == nil {
		cfg.EvalTimes = sim.Linspace(cfg.Start, cfg.End, cfg.EvalPoints)
	}

	cmp := &Comparison{
		Times:   cfg.EvalTimes,
		Names:   make([]string, 0, len(scenarios)),
		Results: make(map[string]*sim.Result, len(scenarios)),
	}

	for _, sc := range scenarios {
		if _, dup := cmp.Results[sc.Name]; dup {
			return nil, fmt.Errorf("scenario: duplicate name %q", sc.Name)
		}

		var rng *rand.Rand
		if sc.Params.Stochastic {
			rng = rand.New(rand.NewSource(sc.Seed))
		}

		dyn, err := career.NewSystem(sc.Params, rng)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		result, err := sim.New(dyn, newIntegrator()).Run(ctx, x0, cfg)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		cmp.Names = append(cmp.Names, sc.Name)
		cmp.Results[sc.Name] = result
	}

	return cmp, nil
}
