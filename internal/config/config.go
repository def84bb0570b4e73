package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

const (
	DefaultYears      = 40.0
	DefaultEvalPoints = 1000
	DefaultDt         = 0.05
	DefaultTolerance  = 1e-6
	DefaultPay        = 50000.0
	DefaultStatus     = 0.5
	DefaultResearch   = 0.5
)

type Config struct {
	Integrator string          `yaml:"integrator"`
	Years      float64         `yaml:"years"`
	EvalPoints int             `yaml:"eval_points"`
	Dt         float64         `yaml:"dt"`
	Tolerance  float64         `yaml:"tolerance"`
	Seed       int64           `yaml:"seed"`
	InitState  InitStateConfig `yaml:"init_state"`
	Params     ParamsConfig    `yaml:"params"`
}

type InitStateConfig struct {
	Pay      float64 `yaml:"pay"`
	Status   float64 `yaml:"status"`
	Research float64 `yaml:"research"`
}

type ParamsConfig struct {
	Inflation        float64 `yaml:"inflation"`
	Recognition      float64 `yaml:"recognition"`
	AlphaResearch    float64 `yaml:"alpha_research"`
	AlphaTeaching    float64 `yaml:"alpha_teaching"`
	Beta             float64 `yaml:"beta"`
	PayCeiling       float64 `yaml:"pay_ceiling"`
	Stochastic       bool    `yaml:"stochastic"`
	StatusLinkedBeta bool    `yaml:"status_linked_beta"`
	ActivationYear   float64 `yaml:"activation_year"`
}

func DefaultConfig() *Config {
	base := career.DefaultParams()
	return &Config{
		Integrator: "rk45",
		Years:      DefaultYears,
		EvalPoints: DefaultEvalPoints,
		Dt:         DefaultDt,
		Tolerance:  DefaultTolerance,
		InitState: InitStateConfig{
			Pay:      DefaultPay,
			Status:   DefaultStatus,
			Research: DefaultResearch,
		},
		Params: ParamsConfig{
			Inflation:     base.Inflation,
			Recognition:   base.Recognition,
			AlphaResearch: base.AlphaResearch,
			AlphaTeaching: base.AlphaTeaching,
			Beta:          base.Beta,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CareerParams maps the config onto one immutable model parameter set.
func (c *Config) CareerParams() career.Params {
	return career.Params{
		Inflation:        c.Params.Inflation,
		Recognition:      c.Params.Recognition,
		AlphaResearch:    c.Params.AlphaResearch,
		AlphaTeaching:    c.Params.AlphaTeaching,
		Beta:             c.Params.Beta,
		PayCeiling:       c.Params.PayCeiling,
		Stochastic:       c.Params.Stochastic,
		StatusLinkedBeta: c.Params.StatusLinkedBeta,
		ActivationYear:   c.Params.ActivationYear,
	}
}

// InitialState builds the [Pay, Status, Research] starting vector.
func (c *Config) InitialState() sim.State {
	return sim.State{c.InitState.Pay, c.InitState.Status, c.InitState.Research}
}

// SimConfig builds the solver configuration for the simulated span.
func (c *Config) SimConfig() sim.Config {
	simCfg := sim.DefaultConfig()
	simCfg.End = c.Years
	simCfg.EvalPoints = c.EvalPoints
	simCfg.Dt = c.Dt
	simCfg.Tolerance = c.Tolerance
	return simCfg
}
