package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
)

// LinearSolver assembles the Jacobian at the iterate u and overwrites
// delta with the solution of J·delta = f.
type LinearSolver interface {
	Name() string
	Solve(delta, u, f diffusion.Solution, c float64, m material.Model) error
}

// Dense stores the Jacobian as a full n×n matrix and solves by LU
// factorization. This is the reference path; the matrix is tridiagonal
// but dense storage keeps the numerics identical to the original.
type Dense struct {
	j  *mat.Dense
	lu mat.LU
}

func NewDense() *Dense {
	return &Dense{}
}

func (d *Dense) Name() string { return "dense" }

func (d *Dense) ensureScratch(n int) {
	if d.j == nil {
		d.j = mat.NewDense(n, n, nil)
		return
	}
	if r, _ := d.j.Dims(); r != n {
		d.j = mat.NewDense(n, n, nil)
	}
}

func (d *Dense) Solve(delta, u, f diffusion.Solution, c float64, m material.Model) error {
	n := len(u)
	if len(delta) != n || len(f) != n {
		return fmt.Errorf("%w: iterate %d, delta %d, rhs %d",
			diffusion.ErrShapeMismatch, n, len(delta), len(f))
	}
	d.ensureScratch(n)
	if err := Jacobian(d.j, u, c, m); err != nil {
		return err
	}
	d.lu.Factorize(d.j)
	dst := mat.NewVecDense(n, delta)
	rhs := mat.NewVecDense(n, f)
	if err := d.lu.SolveVecTo(dst, false, rhs); err != nil {
		return fmt.Errorf("%w: %v", diffusion.ErrLinearSolveFailed, err)
	}
	return nil
}

// Tridiag solves the banded system directly with the Thomas algorithm,
// O(n) assembly and solve instead of the dense O(n²)/O(n³). Same
// matrix, different storage.
type Tridiag struct {
	sub, diag, sup []float64
	cp, dp         []float64
}

func NewTridiag() *Tridiag {
	return &Tridiag{}
}

func (t *Tridiag) Name() string { return "tridiag" }

func (t *Tridiag) ensureScratch(n int) {
	if len(t.diag) != n {
		t.sub = make([]float64, n)
		t.diag = make([]float64, n)
		t.sup = make([]float64, n)
		t.cp = make([]float64, n)
		t.dp = make([]float64, n)
	}
}

func (t *Tridiag) Solve(delta, u, f diffusion.Solution, c float64, m material.Model) error {
	n := len(u)
	if len(delta) != n || len(f) != n {
		return fmt.Errorf("%w: iterate %d, delta %d, rhs %d",
			diffusion.ErrShapeMismatch, n, len(delta), len(f))
	}
	t.ensureScratch(n)
	if err := JacobianBands(t.sub, t.diag, t.sup, u, c, m); err != nil {
		return err
	}

	// Thomas forward sweep. No pivoting: a vanishing pivot means the
	// Jacobian is singular for this iterate.
	piv := t.diag[0]
	if math.Abs(piv) < tinyPivot {
		return fmt.Errorf("%w: zero pivot at row 0", diffusion.ErrLinearSolveFailed)
	}
	t.cp[0] = t.sup[0] / piv
	t.dp[0] = f[0] / piv
	for i := 1; i < n; i++ {
		piv = t.diag[i] - t.sub[i]*t.cp[i-1]
		if math.Abs(piv) < tinyPivot {
			return fmt.Errorf("%w: zero pivot at row %d", diffusion.ErrLinearSolveFailed, i)
		}
		t.cp[i] = t.sup[i] / piv
		t.dp[i] = (f[i] - t.sub[i]*t.dp[i-1]) / piv
	}

	delta[n-1] = t.dp[n-1]
	for i := n - 2; i >= 0; i-- {
		delta[i] = t.dp[i] - t.cp[i]*delta[i+1]
	}
	return nil
}

const tinyPivot = 1e-300
