package stepper

import (
	"context"
	"fmt"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
	"github.com/san-kum/heatlab/internal/solver"
)

// Stepper orchestrates the outer loop over timesteps. It owns the
// evolving interior solution; each step hands a copy to the Newton
// solver and accepts the converged iterate as the new state.
type Stepper struct {
	grid      diffusion.Grid
	mat       material.Model
	newton    *solver.Newton
	metrics   []diffusion.Metric
	observers []diffusion.Observer
}

func New(grid diffusion.Grid, m material.Model, newton *solver.Newton) *Stepper {
	return &Stepper{
		grid:      grid,
		mat:       m,
		newton:    newton,
		metrics:   make([]diffusion.Metric, 0),
		observers: make([]diffusion.Observer, 0),
	}
}

func (s *Stepper) AddMetric(m diffusion.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Stepper) AddObserver(o diffusion.Observer) { s.observers = append(s.observers, o) }

func (s *Stepper) validate(u0 diffusion.Solution, cfg diffusion.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Nt < 0 {
		return fmt.Errorf("nt must be non-negative, got %d", cfg.Nt)
	}
	if len(u0) != s.grid.Nx {
		return fmt.Errorf("%w: initial state %d, grid %d",
			diffusion.ErrShapeMismatch, len(u0), s.grid.Nx)
	}
	return nil
}

// Run advances Nt timesteps from u0 and collects every frame, including
// the initial state, for Nt+1 in total. A numeric failure aborts the
// run: the returned Result keeps the frames accepted so far and the
// error is both recorded and returned, so a corrupted solution never
// propagates into later steps.
func (s *Stepper) Run(ctx context.Context, u0 diffusion.Solution, cfg diffusion.Config) (*diffusion.Result, error) {
	if err := s.validate(u0, cfg); err != nil {
		return nil, err
	}

	result := &diffusion.Result{
		Frames:      make([]diffusion.Frame, 0, cfg.Nt+1),
		Times:       make([]float64, 0, cfg.Nt+1),
		NewtonIters: make([]int, 0, cfg.Nt),
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	dx := s.grid.Dx()
	c := cfg.Dt / (dx * dx)
	u := u0.Clone()
	t := 0.0

	s.emit(result, diffusion.Frame{Step: 0, Time: t, U: u.Padded()})

	for step := 1; step <= cfg.Nt; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, stats, err := s.newton.Solve(u, c, s.mat)
		if err != nil {
			stepErr := &diffusion.StepError{Step: step, Time: t, Wrapped: err}
			result.Errors = append(result.Errors, stepErr)
			s.finish(result)
			return result, stepErr
		}
		if cfg.ValidateState && !next.IsValid() {
			stepErr := &diffusion.StepError{Step: step, Time: t, Wrapped: diffusion.ErrInvalidState}
			result.Errors = append(result.Errors, stepErr)
			s.finish(result)
			return result, stepErr
		}

		u = next
		t += cfg.Dt
		result.StepsTaken++
		result.NewtonIters = append(result.NewtonIters, stats.Iterations)
		s.emit(result, diffusion.Frame{Step: step, Time: t, U: u.Padded()})
	}

	s.finish(result)
	return result, nil
}

// RunWithCallback streams frames to fn instead of collecting them,
// starting with the initial state. Returning false from fn stops the
// run cleanly; this is the hook for rendering collaborators.
func (s *Stepper) RunWithCallback(ctx context.Context, u0 diffusion.Solution, cfg diffusion.Config, fn func(diffusion.Frame) bool) error {
	if err := s.validate(u0, cfg); err != nil {
		return err
	}

	dx := s.grid.Dx()
	c := cfg.Dt / (dx * dx)
	u := u0.Clone()
	t := 0.0

	if !fn(diffusion.Frame{Step: 0, Time: t, U: u.Padded()}) {
		return nil
	}

	for step := 1; step <= cfg.Nt; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next, _, err := s.newton.Solve(u, c, s.mat)
		if err != nil {
			return &diffusion.StepError{Step: step, Time: t, Wrapped: err}
		}
		if cfg.ValidateState && !next.IsValid() {
			return &diffusion.StepError{Step: step, Time: t, Wrapped: diffusion.ErrInvalidState}
		}

		u = next
		t += cfg.Dt
		if !fn(diffusion.Frame{Step: step, Time: t, U: u.Padded()}) {
			return nil
		}
	}
	return nil
}

func (s *Stepper) emit(result *diffusion.Result, f diffusion.Frame) {
	result.Frames = append(result.Frames, f)
	result.Times = append(result.Times, f.Time)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
}

func (s *Stepper) finish(result *diffusion.Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
