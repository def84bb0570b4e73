// Package sweep perturbs model coefficients one at a time and records the
// effect on final pay, producing a (coefficient x factor) sensitivity grid.
package sweep

import (
	"context"
	"math/rand"
	"sync"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

// Sweep names the coefficients to perturb and the multiplicative factors to
// apply to each, holding all other coefficients at their base value.
type Sweep struct {
	Coefficients []string
	Factors      []float64
}

// Default perturbs every model coefficient across factors 0.1 through 2.0.
func Default() Sweep {
	return Sweep{
		Coefficients: career.Coefficients(),
		Factors:      Factors(0.1, 2.0, 20),
	}
}

// Factors returns n multiplicative factors evenly spaced over [lo, hi].
func Factors(lo, hi float64, n int) []float64 {
	return sim.Linspace(lo, hi, n)
}

// Grid is the sweep outcome: FinalPay[i][j] is the end-of-career pay with
// Coefficients[i] scaled by Factors[j].
type Grid struct {
	Coefficients []string
	Factors      []float64
	FinalPay     [][]float64
}

// Row returns the final-pay series for one coefficient, or nil if the
// coefficient was not swept.
func (g *Grid) Row(coeff string) []float64 {
	for i, c := range g.Coefficients {
		if c == coeff {
			return g.FinalPay[i]
		}
	}
	return nil
}

// Runner executes one sweep. Each cell is an independent solve, so rows run
// in parallel; newIntegrator is a factory because integrators may carry
// scratch state and must not be shared across goroutines.
type Runner struct {
	base          career.Params
	x0            sim.State
	cfg           sim.Config
	newIntegrator func() sim.Integrator
	seedStart     int64
}

func NewRunner(base career.Params, x0 sim.State, cfg sim.Config, newIntegrator func() sim.Integrator, seedStart int64) *Runner {
	return &Runner{
		base:          base,
		x0:            x0,
		cfg:           cfg,
		newIntegrator: newIntegrator,
		seedStart:     seedStart,
	}
}

// Run fills the grid. The first cell error aborts the sweep and is surfaced
// to the caller; completed cells are not substituted with defaults.
func (r *Runner) Run(ctx context.Context, s Sweep) (*Grid, error) {
	grid := &Grid{
		Coefficients: s.Coefficients,
		Factors:      s.Factors,
		FinalPay:     make([][]float64, len(s.Coefficients)),
	}

	errs := make([]error, len(s.Coefficients))

	var wg sync.WaitGroup
	for i, coeff := range s.Coefficients {
		wg.Add(1)
		go func(row int, coeff string) {
			defer wg.Done()
			grid.FinalPay[row] = make([]float64, len(s.Factors))
			for col, factor := range s.Factors {
				pay, err := r.runCell(ctx, coeff, factor, row*len(s.Factors)+col)
				if err != nil {
					errs[row] = err
					return
				}
				grid.FinalPay[row][col] = pay
			}
		}(i, coeff)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return grid, err
		}
	}
	return grid, nil
}

func (r *Runner) runCell(ctx context.Context, coeff string, factor float64, cell int) (float64, error) {
	params, err := r.base.Scaled(coeff, factor)
	if err != nil {
		return 0, err
	}

	var rng *rand.Rand
	if params.Stochastic {
		rng = rand.New(rand.NewSource(r.seedStart + int64(cell)))
	}

	dyn, err := career.NewSystem(params, rng)
	if err != nil {
		return 0, err
	}

	result, err := sim.New(dyn, r.newIntegrator()).Run(ctx, r.x0, r.cfg)
	if err != nil {
		return 0, err
	}

	return result.Final()[career.IPay], nil
}
