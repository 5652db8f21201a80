package solver

import (
	"fmt"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
)

const (
	DefaultMaxIter = 100
	DefaultTol     = 1e-9
)

// Stats reports how a Newton solve went.
type Stats struct {
	Iterations int
	Converged  bool
	UpdateNorm float64
}

// Newton converges the implicit-Euler equation f(u) = 0 for the next
// timestep, starting from the previous solution as the initial iterate.
// Damping scales each update; 1 is the plain full-step reference
// behavior.
type Newton struct {
	MaxIter int
	Tol     float64
	Damping float64
	Linear  LinearSolver
}

func NewNewton(linear LinearSolver) *Newton {
	return &Newton{
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
		Damping: 1.0,
		Linear:  linear,
	}
}

// Solve iterates assemble-Jacobian / solve J·Δ = f / u ← u − Δ until
// the update norm drops below Tol·n, for at most MaxIter iterations.
// The last iterate is returned in every case; on cap exhaustion the
// error wraps ErrNonConvergence rather than silently accepting it.
func (nw *Newton) Solve(prev diffusion.Solution, c float64, m material.Model) (diffusion.Solution, Stats, error) {
	n := len(prev)
	u := prev.Clone()
	f := make(diffusion.Solution, n)
	delta := make(diffusion.Solution, n)

	var st Stats
	tol := nw.Tol * float64(n)
	for it := 1; it <= nw.MaxIter; it++ {
		st.Iterations = it
		if err := Residual(f, u, prev, c, m); err != nil {
			return u, st, err
		}
		if err := nw.Linear.Solve(delta, u, f, c, m); err != nil {
			return u, st, err
		}
		for i := range u {
			u[i] -= nw.Damping * delta[i]
		}
		st.UpdateNorm = nw.Damping * delta.Norm()
		if st.UpdateNorm < tol {
			st.Converged = true
			return u, st, nil
		}
	}
	return u, st, fmt.Errorf("%w: %d iterations, last update norm %.3e",
		diffusion.ErrNonConvergence, nw.MaxIter, st.UpdateNorm)
}
