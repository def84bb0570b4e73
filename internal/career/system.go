package career

import (
	"math/rand"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

// System is the career vector field: it composes the pay, status, and
// research derivatives into the single function the integrator consumes.
//
// The deterministic variant is pure: identical (state, time) inputs produce
// identical rates. The stochastic variant consumes one draw per coefficient
// per evaluation from the injected generator, so repeated evaluations at the
// same state differ; callers wanting reproducibility seed the generator.
type System struct {
	params Params
	rng    *rand.Rand
}

// NewSystem builds a system for one parameter set. rng may be nil for
// deterministic parameter sets; stochastic sets require one.
func NewSystem(p Params, rng *rand.Rand) (*System, error) {
	if p.Stochastic && rng == nil {
		return nil, ErrRandSource
	}
	return &System{params: p, rng: rng}, nil
}

func (s *System) Params() Params { return s.params }

func (s *System) Dim() int { return Dim }

// Derive returns [dPay, dStatus, dResearch] in state component order.
func (s *System) Derive(x sim.State, t float64) sim.State {
	return sim.State{s.PayRate(x, t), s.StatusRate(x, t), s.ResearchRate(x, t)}
}

// PayRate is the pay derivative: inflation growth plus a status-weighted
// recognition reward, scaled toward zero as pay approaches the ceiling when
// one is set. Pay above the ceiling would shrink; nothing guards against
// starting there, matching the unguarded edge in the model definition.
func (s *System) PayRate(x sim.State, t float64) float64 {
	pay, status := x[IPay], x[IStatus]

	inflation := s.params.Inflation
	if s.params.Stochastic {
		inflation = InflationLow + s.rng.Float64()*(InflationHigh-InflationLow)
	}

	recognition := s.params.Resolve(t, s.params.Recognition)
	rate := inflation*pay + recognition*status*pay

	if s.params.PayCeiling > 0 {
		rate *= (s.params.PayCeiling - pay) / s.params.PayCeiling
	}
	return rate
}

// StatusRate is logistic in status. The growth coefficient blends the
// research and teaching contributions, with teaching level derived as
// 1 - Research so the two always sum to one.
func (s *System) StatusRate(x sim.State, t float64) float64 {
	status, research := x[IStatus], x[IResearch]

	alphaR := s.params.AlphaResearch
	alphaT := s.params.AlphaTeaching
	if s.params.Stochastic {
		alphaR = s.rng.NormFloat64()*AlphaResearchStd + AlphaResearchMean
		alphaT = s.rng.NormFloat64()*AlphaTeachingStd + AlphaTeachingMean
	}
	alphaR = s.params.Resolve(t, alphaR)
	alphaT = s.params.Resolve(t, alphaT)

	return (alphaR*research + alphaT*(1-research)) * status * (1 - status)
}

// ResearchRate is logistic in research level. In the status-linked variant
// the growth rate scales with current status, so established academics grow
// their research output faster.
func (s *System) ResearchRate(x sim.State, t float64) float64 {
	research, status := x[IResearch], x[IStatus]

	beta := s.params.Beta
	if s.params.Stochastic {
		beta = s.rng.NormFloat64()*BetaStd + BetaMean
	}
	beta = s.params.Resolve(t, beta)

	if s.params.StatusLinkedBeta {
		beta *= status
	}
	return beta * research * (1 - research)
}

// ValidateInitial rejects states the model is not defined over: negative
// pay, or status/research outside [0,1].
func (s *System) ValidateInitial(x sim.State) error {
	if len(x) != Dim {
		return &sim.InvalidStateError{Index: len(x), Reason: "career state must have 3 components"}
	}
	if x[IPay] < 0 {
		return &sim.InvalidStateError{Index: IPay, Value: x[IPay], Reason: "pay must be non-negative"}
	}
	if x[IStatus] < 0 || x[IStatus] > 1 {
		return &sim.InvalidStateError{Index: IStatus, Value: x[IStatus], Reason: "status must be in [0,1]"}
	}
	if x[IResearch] < 0 || x[IResearch] > 1 {
		return &sim.InvalidStateError{Index: IResearch, Value: x[IResearch], Reason: "research must be in [0,1]"}
	}
	return nil
}

// RandomInitialState draws a fresh-career starting point: fixed pay, modest
// random status, and a research level anywhere up to mid-scale.
func RandomInitialState(rng *rand.Rand, pay float64) sim.State {
	status := 0.05 + rng.Float64()*0.45
	research := rng.Float64() * 0.5
	return sim.State{pay, status, research}
}
