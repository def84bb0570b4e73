package career

import (
	"errors"
	"fmt"
)

// State component indices. The integrator addresses state purely
// positionally, so this ordering is part of the contract.
const (
	IPay      = 0
	IStatus   = 1
	IResearch = 2
)

// Dim is the career state dimension: [Pay, Status, Research].
const Dim = 3

// Coefficient names accepted by Params.Scaled and the sensitivity sweep.
const (
	CoeffRecognition   = "recognition"
	CoeffAlphaResearch = "alpha_research"
	CoeffAlphaTeaching = "alpha_teaching"
	CoeffBeta          = "beta"
)

// Distributions used by the stochastic variant, drawn once per derivative
// evaluation: inflation ~ U[low, high], alphas and beta ~ N(mean, std).
const (
	InflationLow      = 0.01
	InflationHigh     = 0.06
	AlphaResearchMean = 0.2
	AlphaResearchStd  = 0.1
	AlphaTeachingMean = 0.05
	AlphaTeachingStd  = 0.01
	BetaMean          = 0.05
	BetaStd           = 0.5
)

var (
	// ErrRandSource indicates a stochastic parameter set built without an
	// injected randomness source.
	ErrRandSource = errors.New("career: stochastic params require a rand source")

	// ErrUnknownCoefficient indicates a coefficient name outside the
	// recognized set.
	ErrUnknownCoefficient = errors.New("career: unknown coefficient")
)

// Params is one immutable parameter set for a simulation run.
//
// Recognition scales how strongly status feeds pay growth, AlphaResearch and
// AlphaTeaching weight status growth between research and teaching output
// (teaching level is always 1 - Research), and Beta is the logistic research
// growth rate. PayCeiling of 0 disables pay saturation.
//
// Stochastic switches the coefficients to per-call random draws; the draw
// distributions are the package constants above. StatusLinkedBeta multiplies
// the research growth rate by current status.
type Params struct {
	Inflation     float64
	Recognition   float64
	AlphaResearch float64
	AlphaTeaching float64
	Beta          float64
	PayCeiling    float64

	Stochastic       bool
	StatusLinkedBeta bool

	// ActivationYear gates the four model coefficients: before this career
	// year Resolve returns 0 for each of them. Zero means always active.
	ActivationYear float64
}

// DefaultParams is the deterministic baseline parameter set.
func DefaultParams() Params {
	return Params{
		Inflation:     0.03,
		Recognition:   0.03,
		AlphaResearch: 0.1,
		AlphaTeaching: 0.05,
		Beta:          0.5,
	}
}

// Resolve maps a base coefficient to its effective value at time t. The
// fixed variant is the identity; with an activation year set it is a step
// function that switches the coefficient on at that year.
func (p Params) Resolve(t, base float64) float64 {
	if p.ActivationYear > 0 && t < p.ActivationYear {
		return 0
	}
	return base
}

// Scaled returns a copy with the named coefficient multiplied by factor.
func (p Params) Scaled(coeff string, factor float64) (Params, error) {
	switch coeff {
	case CoeffRecognition:
		p.Recognition *= factor
	case CoeffAlphaResearch:
		p.AlphaResearch *= factor
	case CoeffAlphaTeaching:
		p.AlphaTeaching *= factor
	case CoeffBeta:
		p.Beta *= factor
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownCoefficient, coeff)
	}
	return p, nil
}

// Coefficients lists the sweepable coefficient names in a fixed order.
func Coefficients() []string {
	return []string{CoeffRecognition, CoeffAlphaResearch, CoeffAlphaTeaching, CoeffBeta}
}
