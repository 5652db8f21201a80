package diffusion

import (
	"errors"
	"math"
	"testing"
)

func TestSolutionClone(t *testing.T) {
	s := Solution{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("clone should not alias the original")
	}
}

func TestSolutionNorm(t *testing.T) {
	s := Solution{3, 4}
	if s.Norm() != 5 {
		t.Errorf("expected norm 5, got %f", s.Norm())
	}
}

func TestSolutionMaxAbs(t *testing.T) {
	s := Solution{0.5, -2.5, 1.0}
	if s.MaxAbs() != 2.5 {
		t.Errorf("expected 2.5, got %f", s.MaxAbs())
	}
}

func TestSolutionIsValid(t *testing.T) {
	if !(Solution{1, 2}).IsValid() {
		t.Error("finite values should be valid")
	}
	if (Solution{1, math.NaN()}).IsValid() {
		t.Error("NaN should be invalid")
	}
	if (Solution{math.Inf(1)}).IsValid() {
		t.Error("Inf should be invalid")
	}
}

func TestSolutionPadded(t *testing.T) {
	p := Solution{1, 2, 3}.Padded()
	if len(p) != 5 {
		t.Fatalf("expected length 5, got %d", len(p))
	}
	if p[0] != 0 || p[4] != 0 {
		t.Error("padding must clamp the boundaries to zero")
	}
	if p[1] != 1 || p[3] != 3 {
		t.Error("interior values must be preserved")
	}
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(-1, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if g.Dx() != 0.25 {
		t.Errorf("expected dx 0.25, got %f", g.Dx())
	}
	pts := g.Points()
	if len(pts) != 9 {
		t.Fatalf("expected 9 points, got %d", len(pts))
	}
	if pts[0] != -1 || pts[8] != 1 {
		t.Error("endpoints must match the domain")
	}
	if len(g.Interior()) != 7 {
		t.Errorf("expected 7 interior points, got %d", len(g.Interior()))
	}
}

func TestNewGridInvalid(t *testing.T) {
	if _, err := NewGrid(1, 1, 5); !errors.Is(err, ErrInvalidGrid) {
		t.Error("degenerate domain should be rejected")
	}
	if _, err := NewGrid(0, 1, 0); !errors.Is(err, ErrInvalidGrid) {
		t.Error("nx below 1 should be rejected")
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	e := &StepError{Step: 3, Time: 0.5, Wrapped: ErrNonConvergence}
	if !errors.Is(e, ErrNonConvergence) {
		t.Error("StepError should unwrap to its cause")
	}
}
