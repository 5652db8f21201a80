package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
)

// Jacobian fills dst with the exact n×n derivative of the residual at
// the iterate u. The matrix is tridiagonal: the residual at i touches
// only u[i−1], u[i], u[i+1]. Entries off the three diagonals are left
// exactly zero.
//
//	J[i][i]   = 1 − c·( 0.25·k''(u[i])·du² + k'(u[i])·ddu − 2·k(u[i]) )
//	J[i][i−1] =     c·( 0.5·k'(u[i])·du − k(u[i]) )
//	J[i][i+1] =    −c·( 0.5·k'(u[i])·du + k(u[i]) )
//
// This must be re-derived by hand whenever the residual changes; a
// finite-difference fallback would forfeit quadratic convergence and
// double the per-iteration cost.
func Jacobian(dst *mat.Dense, u diffusion.Solution, c float64, m material.Model) error {
	n := len(u)
	r, cols := dst.Dims()
	if r != n || cols != n {
		return fmt.Errorf("%w: iterate %d, jacobian %dx%d",
			diffusion.ErrShapeMismatch, n, r, cols)
	}
	dst.Zero()
	for i := 0; i < n; i++ {
		du := ghost(u, i+1) - ghost(u, i-1)
		ddu := ghost(u, i-1) - 2*u[i] + ghost(u, i+1)
		k, dk, ddk := m.K(u[i]), m.DK(u[i]), m.DDK(u[i])
		dst.Set(i, i, 1-c*(0.25*ddk*du*du+dk*ddu-2*k))
		if i > 0 {
			dst.Set(i, i-1, c*(0.5*dk*du-k))
		}
		if i < n-1 {
			dst.Set(i, i+1, -c*(0.5*dk*du+k))
		}
	}
	return nil
}

// JacobianBands writes the same matrix as Jacobian into three parallel
// diagonals for the O(n) tridiagonal path. sub[0] and sup[n−1] are
// unused and zeroed.
func JacobianBands(sub, diag, sup []float64, u diffusion.Solution, c float64, m material.Model) error {
	n := len(u)
	if len(sub) != n || len(diag) != n || len(sup) != n {
		return fmt.Errorf("%w: iterate %d, bands %d/%d/%d",
			diffusion.ErrShapeMismatch, n, len(sub), len(diag), len(sup))
	}
	for i := 0; i < n; i++ {
		du := ghost(u, i+1) - ghost(u, i-1)
		ddu := ghost(u, i-1) - 2*u[i] + ghost(u, i+1)
		k, dk, ddk := m.K(u[i]), m.DK(u[i]), m.DDK(u[i])
		diag[i] = 1 - c*(0.25*ddk*du*du+dk*ddu-2*k)
		if i > 0 {
			sub[i] = c * (0.5*dk*du - k)
		} else {
			sub[i] = 0
		}
		if i < n-1 {
			sup[i] = -c * (0.5*dk*du + k)
		} else {
			sup[i] = 0
		}
	}
	return nil
}
