package solver

import (
	"fmt"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
)

// ghost reads u[i], treating the clamped zero boundary values as
// implicit neighbors outside [0, len(u)). Keeping one formula for every
// index stops the boundary rows from drifting away from the interior
// ones under edits.
func ghost(u diffusion.Solution, i int) float64 {
	if i < 0 || i >= len(u) {
		return 0
	}
	return u[i]
}

// Residual fills dst with the implicit-Euler root function for one
// timestep of u_t = (k(u) u_x)_x, expanded via the chain rule to
// k'(u) u_x² + k(u) u_xx and discretized with centered differences:
//
//	f[i] = u[i] − prev[i] − c·( 0.25·k'(u[i])·du² + k(u[i])·ddu )
//
// where du = u[i+1]−u[i−1], ddu = u[i−1]−2u[i]+u[i+1], and c = dt/dx².
// The accepted step is the root f(u) = 0.
func Residual(dst, u, prev diffusion.Solution, c float64, m material.Model) error {
	n := len(u)
	if len(prev) != n || len(dst) != n {
		return fmt.Errorf("%w: iterate %d, previous %d, residual %d",
			diffusion.ErrShapeMismatch, n, len(prev), len(dst))
	}
	for i := 0; i < n; i++ {
		du := ghost(u, i+1) - ghost(u, i-1)
		ddu := ghost(u, i-1) - 2*u[i] + ghost(u, i+1)
		dst[i] = u[i] - prev[i] - c*(0.25*m.DK(u[i])*du*du+m.K(u[i])*ddu)
	}
	return nil
}
