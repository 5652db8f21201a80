package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultA         = -1.0
	DefaultB         = 1.0
	DefaultDt        = 1e-4
	DefaultNx        = 63
	DefaultNt        = 200
	DefaultK0        = 0.5
	DefaultAlpha     = 0.5
	DefaultCenter    = 0.0
	DefaultWidth     = 0.25
	DefaultAmp       = 1.0
	DefaultMode      = 1
	DefaultTol       = 1e-9
	DefaultMaxNewton = 100
	DefaultDamping   = 1.0
)

type Config struct {
	Material string  `yaml:"material"`
	Profile  string  `yaml:"profile"`
	Solver   string  `yaml:"solver"`
	A        float64 `yaml:"a"`
	B        float64 `yaml:"b"`
	Dt       float64 `yaml:"dt"`
	Nx       int     `yaml:"nx"`
	Nt       int     `yaml:"nt"`

	MaterialParams MaterialConfig `yaml:"material_params"`
	ProfileParams  ProfileConfig  `yaml:"profile_params"`
	Newton         NewtonConfig   `yaml:"newton"`
}

type MaterialConfig struct {
	K0    float64 `yaml:"k0"`
	Alpha float64 `yaml:"alpha"`
}

type ProfileConfig struct {
	Center float64 `yaml:"center"`
	Width  float64 `yaml:"width"`
	Amp    float64 `yaml:"amp"`
	Mode   int     `yaml:"mode"`
}

type NewtonConfig struct {
	Tol     float64 `yaml:"tol"`
	MaxIter int     `yaml:"max_iter"`
	Damping float64 `yaml:"damping"`
}

func DefaultConfig() *Config {
	return &Config{
		Material: "rational",
		Profile:  "gaussian",
		Solver:   "dense",
		A:        DefaultA,
		B:        DefaultB,
		Dt:       DefaultDt,
		Nx:       DefaultNx,
		Nt:       DefaultNt,
		MaterialParams: MaterialConfig{
			K0:    DefaultK0,
			Alpha: DefaultAlpha,
		},
		ProfileParams: ProfileConfig{
			Center: DefaultCenter,
			Width:  DefaultWidth,
			Amp:    DefaultAmp,
			Mode:   DefaultMode,
		},
		Newton: NewtonConfig{
			Tol:     DefaultTol,
			MaxIter: DefaultMaxNewton,
			Damping: DefaultDamping,
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

// Validate catches parameter combinations the solver would reject
// anyway, but with a message pointing at the config field.
func (c *Config) Validate() error {
	if c.B <= c.A {
		return fmt.Errorf("config: domain [%g, %g] is empty", c.A, c.B)
	}
	if c.Nx < 1 {
		return fmt.Errorf("config: nx must be at least 1, got %d", c.Nx)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Nt < 0 {
		return fmt.Errorf("config: nt must be non-negative, got %d", c.Nt)
	}
	if c.Newton.MaxIter < 1 {
		return fmt.Errorf("config: newton max_iter must be at least 1, got %d", c.Newton.MaxIter)
	}
	if c.Newton.Tol <= 0 {
		return fmt.Errorf("config: newton tol must be positive, got %g", c.Newton.Tol)
	}
	if c.Newton.Damping <= 0 || c.Newton.Damping > 1 {
		return fmt.Errorf("config: newton damping must be in (0, 1], got %g", c.Newton.Damping)
	}
	return nil
}
