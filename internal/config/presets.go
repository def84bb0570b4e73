package config

import "github.com/Ryan-CodingExtraordinaire/careersim/internal/career"

// Presets enumerate the recognized model variants so they live in one place
// instead of as separate near-copies of the model.
var Presets = map[string]*Config{
	// Fixed coefficients, no ceiling: the textbook deterministic career.
	"baseline": {
		Integrator: "rk45", Years: 40, EvalPoints: 1000, Dt: 0.05, Tolerance: 1e-6,
		InitState: InitStateConfig{Pay: 50000, Status: 0.5, Research: 0.5},
		Params: ParamsConfig{
			Inflation: 0.03, Recognition: 0.03,
			AlphaResearch: 0.1, AlphaTeaching: 0.05, Beta: 0.5,
		},
	},
	// Deterministic with the 500k pay ceiling.
	"ceiling": {
		Integrator: "rk45", Years: 40, EvalPoints: 1000, Dt: 0.05, Tolerance: 1e-6,
		InitState: InitStateConfig{Pay: 50000, Status: 0.5, Research: 0.5},
		Params: ParamsConfig{
			Inflation: 0.03, Recognition: 0.03,
			AlphaResearch: 0.1, AlphaTeaching: 0.05, Beta: 0.5,
			PayCeiling: 500000,
		},
	},
	// Per-call random coefficient draws; the fixed values here are the draw
	// means and only matter if stochastic is switched off.
	"stochastic": {
		Integrator: "rk45", Years: 40, EvalPoints: 1000, Dt: 0.05, Tolerance: 1e-4,
		InitState: InitStateConfig{Pay: 50000, Status: 0.3, Research: 0.25},
		Params: ParamsConfig{
			Inflation: 0.035, Recognition: 0.03,
			AlphaResearch: career.AlphaResearchMean, AlphaTeaching: career.AlphaTeachingMean,
			Beta: career.BetaMean, PayCeiling: 500000,
			Stochastic: true, StatusLinkedBeta: true,
		},
	},
	// Research growth scales with status but coefficients stay fixed.
	"established": {
		Integrator: "rk45", Years: 40, EvalPoints: 1000, Dt: 0.05, Tolerance: 1e-6,
		InitState: InitStateConfig{Pay: 50000, Status: 0.6, Research: 0.4},
		Params: ParamsConfig{
			Inflation: 0.03, Recognition: 0.03,
			AlphaResearch: 0.1, AlphaTeaching: 0.05, Beta: 0.5,
			StatusLinkedBeta: true,
		},
	},
	// Recognition and growth coefficients switch on at year 10.
	"late-bloomer": {
		Integrator: "rk45", Years: 40, EvalPoints: 1000, Dt: 0.05, Tolerance: 1e-6,
		InitState: InitStateConfig{Pay: 50000, Status: 0.2, Research: 0.2},
		Params: ParamsConfig{
			Inflation: 0.03, Recognition: 0.03,
			AlphaResearch: 0.1, AlphaTeaching: 0.05, Beta: 0.5,
			ActivationYear: 10,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
