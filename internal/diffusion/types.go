package diffusion

import (
	"fmt"
	"math"
)

// Solution holds the interior grid samples of u. The two domain endpoints
// are fixed at zero and never stored.
type Solution []float64

func (s Solution) Clone() Solution {
	c := make(Solution, len(s))
	copy(c, s)
	return c
}

func (s Solution) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s Solution) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s Solution) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func (s Solution) Sub(other Solution) Solution {
	result := make(Solution, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Padded returns the boundary-padded vector (0, s..., 0) handed to
// rendering and export consumers.
func (s Solution) Padded() Solution {
	p := make(Solution, len(s)+2)
	copy(p[1:], s)
	return p
}

// Grid describes the spatial discretization of [A, B] with Nx interior
// points. The endpoints carry the fixed zero boundary values.
type Grid struct {
	A, B float64
	Nx   int
}

func NewGrid(a, b float64, nx int) (Grid, error) {
	if b <= a {
		return Grid{}, fmt.Errorf("%w: b=%g must exceed a=%g", ErrInvalidGrid, b, a)
	}
	if nx < 1 {
		return Grid{}, fmt.Errorf("%w: nx=%d must be at least 1", ErrInvalidGrid, nx)
	}
	return Grid{A: a, B: b, Nx: nx}, nil
}

func (g Grid) Dx() float64 {
	return (g.B - g.A) / float64(g.Nx+1)
}

// Points returns all Nx+2 grid coordinates including the endpoints.
func (g Grid) Points() []float64 {
	dx := g.Dx()
	x := make([]float64, g.Nx+2)
	for i := range x {
		x[i] = g.A + float64(i)*dx
	}
	x[len(x)-1] = g.B
	return x
}

// Interior returns the Nx interior grid coordinates.
func (g Grid) Interior() []float64 {
	return g.Points()[1 : g.Nx+1]
}

// Frame is one timestep's output: the simulation time and the
// boundary-padded solution of length Nx+2.
type Frame struct {
	Step int
	Time float64
	U    Solution
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	Dt            float64
	Nt            int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1e-4,
		Nt:            200,
		ValidateState: true,
	}
}

type Result struct {
	Frames      []Frame
	Times       []float64
	NewtonIters []int
	Metrics     map[string]float64
	StepsTaken  int
	Errors      []error
}

// StepError wraps a numeric failure with the timestep it occurred in.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
