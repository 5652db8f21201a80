package stepper

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
	"github.com/san-kum/heatlab/internal/solver"
)

func testGrid(t *testing.T, nx int) diffusion.Grid {
	t.Helper()
	g, err := diffusion.NewGrid(-1, 1, nx)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func bump(g diffusion.Grid) diffusion.Solution {
	xs := g.Interior()
	u := make(diffusion.Solution, len(xs))
	for i, x := range xs {
		u[i] = math.Exp(-x * x / 0.08)
	}
	return u
}

func TestRunFrameShape(t *testing.T) {
	g := testGrid(t, 15)
	s := New(g, material.Rational(0.5), solver.NewNewton(solver.NewDense()))

	cfg := diffusion.Config{Dt: 1e-4, Nt: 10, ValidateState: true}
	result, err := s.Run(context.Background(), bump(g), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != cfg.Nt+1 {
		t.Errorf("expected %d frames, got %d", cfg.Nt+1, len(result.Frames))
	}
	if len(result.Times) != cfg.Nt+1 {
		t.Errorf("expected %d times, got %d", cfg.Nt+1, len(result.Times))
	}
	if len(result.NewtonIters) != cfg.Nt {
		t.Errorf("expected %d iteration counts, got %d", cfg.Nt, len(result.NewtonIters))
	}
	for i, f := range result.Frames {
		if len(f.U) != g.Nx+2 {
			t.Fatalf("frame %d: expected padded length %d, got %d", i, g.Nx+2, len(f.U))
		}
		if f.U[0] != 0 || f.U[len(f.U)-1] != 0 {
			t.Errorf("frame %d: boundary values not clamped to zero", i)
		}
	}
	wantT := float64(cfg.Nt) * cfg.Dt
	gotT := result.Times[len(result.Times)-1]
	if math.Abs(gotT-wantT) > 1e-12 {
		t.Errorf("expected final time %g, got %g", wantT, gotT)
	}
}

func TestRunFirstStepMatchesDirectSolve(t *testing.T) {
	// nx=3 unit spike with constant k and c=0.5: the first accepted step
	// is the exact tridiagonal solve [1/7, 4/7, 1/7].
	g, err := diffusion.NewGrid(0, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	// dx = 1, so dt = 0.5 gives c = 0.5.
	s := New(g, material.Constant(1), solver.NewNewton(solver.NewDense()))
	result, err := s.Run(context.Background(), diffusion.Solution{0, 1, 0}, diffusion.Config{Dt: 0.5, Nt: 1, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := result.Frames[1].U
	want := []float64{0, 1.0 / 7.0, 4.0 / 7.0, 1.0 / 7.0, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("u[%d]: expected %.12f, got %.12f", i, want[i], got[i])
		}
	}
}

// Positive diffusivity with zero boundaries: the peak must never grow.
func TestRunMaximumPrinciple(t *testing.T) {
	for _, m := range []material.Model{
		material.Constant(1),
		material.Rational(0.5),
		material.Quadratic(0.5),
	} {
		g := testGrid(t, 31)
		s := New(g, m, solver.NewNewton(solver.NewDense()))

		cfg := diffusion.Config{Dt: 5e-4, Nt: 50, ValidateState: true}
		result, err := s.Run(context.Background(), bump(g), cfg)
		if err != nil {
			t.Fatalf("material %s: run failed: %v", m.Name, err)
		}

		prevPeak := math.Inf(1)
		for i, f := range result.Frames {
			peak := f.U.MaxAbs()
			if peak > prevPeak*(1+1e-12)+1e-12 {
				t.Errorf("material %s: peak grew at frame %d: %.15f -> %.15f", m.Name, i, prevPeak, peak)
			}
			prevPeak = peak
		}
	}
}

func TestRunNewtonItersBounded(t *testing.T) {
	g := testGrid(t, 31)
	s := New(g, material.Rational(0.5), solver.NewNewton(solver.NewDense()))

	result, err := s.Run(context.Background(), bump(g), diffusion.Config{Dt: 1e-3, Nt: 20, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for step, iters := range result.NewtonIters {
		if iters >= 10 {
			t.Errorf("step %d: %d newton iterations, expected well below the cap", step+1, iters)
		}
	}
}

func TestRunContextCancel(t *testing.T) {
	g := testGrid(t, 15)
	s := New(g, material.Rational(0.5), solver.NewNewton(solver.NewDense()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, bump(g), diffusion.Config{Dt: 1e-4, Nt: 100, ValidateState: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Frames) != 1 {
		t.Errorf("expected only the initial frame, got %d", len(result.Frames))
	}
}

func TestRunAbortsOnSolverFailure(t *testing.T) {
	// Negative diffusivity makes the 1x1 Jacobian singular at c=0.5
	// (1 + 2ck0 = 0), so the first step must abort the run.
	g, err := diffusion.NewGrid(0, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	s := New(g, material.Constant(-1), solver.NewNewton(solver.NewDense()))

	result, err := s.Run(context.Background(), diffusion.Solution{1}, diffusion.Config{Dt: 0.5, Nt: 5, ValidateState: true})
	if !errors.Is(err, diffusion.ErrLinearSolveFailed) {
		t.Fatalf("expected ErrLinearSolveFailed, got %v", err)
	}
	var stepErr *diffusion.StepError
	if !errors.As(err, &stepErr) {
		t.Fatal("expected a StepError wrapper")
	}
	if stepErr.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", stepErr.Step)
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %d", len(result.Errors))
	}
	if len(result.Frames) != 1 {
		t.Errorf("expected only frames accepted before the failure, got %d", len(result.Frames))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	g := testGrid(t, 7)
	s := New(g, material.Constant(1), solver.NewNewton(solver.NewDense()))

	cases := []struct {
		name string
		u0   diffusion.Solution
		cfg  diffusion.Config
	}{
		{"zero dt", make(diffusion.Solution, 7), diffusion.Config{Dt: 0, Nt: 1}},
		{"negative nt", make(diffusion.Solution, 7), diffusion.Config{Dt: 1e-4, Nt: -1}},
		{"wrong length", make(diffusion.Solution, 5), diffusion.Config{Dt: 1e-4, Nt: 1}},
	}
	for _, tc := range cases {
		if _, err := s.Run(context.Background(), tc.u0, tc.cfg); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestRunWithCallbackStops(t *testing.T) {
	g := testGrid(t, 15)
	s := New(g, material.Rational(0.5), solver.NewNewton(solver.NewDense()))

	frames := 0
	err := s.RunWithCallback(context.Background(), bump(g), diffusion.Config{Dt: 1e-4, Nt: 100, ValidateState: true},
		func(f diffusion.Frame) bool {
			frames++
			return frames < 5
		})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if frames != 5 {
		t.Errorf("expected callback to stop after 5 frames, got %d", frames)
	}
}

func TestRunZeroStateStaysZero(t *testing.T) {
	g := testGrid(t, 9)
	s := New(g, material.Rational(0.5), solver.NewNewton(solver.NewDense()))

	result, err := s.Run(context.Background(), make(diffusion.Solution, 9), diffusion.Config{Dt: 1e-3, Nt: 5, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i, f := range result.Frames {
		for j, v := range f.U {
			if v != 0 {
				t.Fatalf("frame %d index %d: zero state drifted to %g", i, j, v)
			}
		}
	}
	for step, iters := range result.NewtonIters {
		if iters != 1 {
			t.Errorf("step %d: zero state should converge in one iteration, took %d", step+1, iters)
		}
	}
}
