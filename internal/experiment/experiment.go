package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/metrics"
	"github.com/san-kum/heatlab/internal/profile"
	"github.com/san-kum/heatlab/internal/solver"
	"github.com/san-kum/heatlab/internal/stepper"
)

// Experiment assembles a grid, material, Newton solver, and initial
// state from a config, ready to run or stream.
type Experiment struct {
	Cfg     *config.Config
	Grid    diffusion.Grid
	Initial diffusion.Solution
	stepper *stepper.Stepper
}

// New builds an experiment from cfg, filling unset Newton fields with
// defaults so hand-written presets stay terse.
func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	normalizeNewton(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := diffusion.NewGrid(cfg.A, cfg.B, cfg.Nx)
	if err != nil {
		return nil, err
	}
	m, err := registry.GetMaterial(cfg.Material, cfg.MaterialParams)
	if err != nil {
		return nil, err
	}
	p, err := registry.GetProfile(cfg)
	if err != nil {
		return nil, err
	}
	lin, err := registry.GetSolver(cfg.Solver)
	if err != nil {
		return nil, err
	}

	nw := solver.NewNewton(lin)
	nw.Tol = cfg.Newton.Tol
	nw.MaxIter = cfg.Newton.MaxIter
	nw.Damping = cfg.Newton.Damping

	s := stepper.New(grid, m, nw)
	s.AddMetric(metrics.NewPeak())
	s.AddMetric(metrics.NewMaxPrinciple(1e-9))
	s.AddMetric(metrics.NewHeatContent(grid.Dx()))

	return &Experiment{
		Cfg:     cfg,
		Grid:    grid,
		Initial: profile.Sample(p, grid),
		stepper: s,
	}, nil
}

func normalizeNewton(cfg *config.Config) {
	if cfg.Newton.MaxIter == 0 {
		cfg.Newton.MaxIter = config.DefaultMaxNewton
	}
	if cfg.Newton.Tol == 0 {
		cfg.Newton.Tol = config.DefaultTol
	}
	if cfg.Newton.Damping == 0 {
		cfg.Newton.Damping = config.DefaultDamping
	}
}

func (e *Experiment) Run(ctx context.Context) (*diffusion.Result, error) {
	if e.stepper == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	return e.stepper.Run(ctx, e.Initial, e.runConfig())
}

// Stream feeds frames to fn as they are accepted; see
// stepper.RunWithCallback.
func (e *Experiment) Stream(ctx context.Context, fn func(diffusion.Frame) bool) error {
	return e.stepper.RunWithCallback(ctx, e.Initial, e.runConfig(), fn)
}

func (e *Experiment) runConfig() diffusion.Config {
	return diffusion.Config{
		Dt:            e.Cfg.Dt,
		Nt:            e.Cfg.Nt,
		ValidateState: true,
	}
}

// Stepper exposes the underlying stepper for adding observers.
func (e *Experiment) Stepper() *stepper.Stepper {
	return e.stepper
}
