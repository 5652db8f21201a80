package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
)

// Three interior points, unit spike, k ≡ 1, c = 0.5. Pins the exact
// finite-difference formula:
//
//	i=0: du=u[1]=1,  ddu=-2u[0]+u[1]=1  → f = 0-0-0.5·(1·1)  = -0.5
//	i=1: du=0,       ddu=u[0]-2u[1]+u[2]=-2 → f = 1-1-0.5·(-2) = 1
//	i=2: du=-u[1]=-1, ddu=u[1]-2u[2]=1  → f = -0.5
func TestResidualSpikeScenario(t *testing.T) {
	u := diffusion.Solution{0, 1, 0}
	prev := u.Clone()
	f := make(diffusion.Solution, 3)

	err := Residual(f, u, prev, 0.5, material.Constant(1))
	require.NoError(t, err)

	assert.InDelta(t, -0.5, f[0], 1e-15)
	assert.InDelta(t, 1.0, f[1], 1e-15)
	assert.InDelta(t, -0.5, f[2], 1e-15)
}

func TestResidualZeroState(t *testing.T) {
	n := 7
	u := make(diffusion.Solution, n)
	prev := make(diffusion.Solution, n)
	f := make(diffusion.Solution, n)

	for _, m := range []material.Model{
		material.Constant(2),
		material.Rational(0.5),
		material.Quadratic(1),
		material.Exponential(1, 0.3),
	} {
		err := Residual(f, u, prev, 0.25, m)
		require.NoError(t, err, m.Name)
		for i, v := range f {
			assert.Zerof(t, v, "material %s, index %d", m.Name, i)
		}
	}
}

// The boundary rows must equal the interior formula with a zero ghost
// neighbor plugged in. Embed the iterate in a one-wider vector with
// explicit zeros and compare its interior rows against the original's
// boundary rows.
func TestResidualBoundaryMatchesGhostedInterior(t *testing.T) {
	m := material.Rational(0.5)
	c := 0.3
	u := diffusion.Solution{0.8, -0.2, 0.5, 0.1}
	prev := diffusion.Solution{0.7, -0.1, 0.4, 0.2}

	f := make(diffusion.Solution, len(u))
	require.NoError(t, Residual(f, u, prev, c, m))

	padded := u.Padded()
	paddedPrev := prev.Padded()
	fPadded := make(diffusion.Solution, len(padded))
	require.NoError(t, Residual(fPadded, padded, paddedPrev, c, m))

	// Rows 1..n of the padded residual see real zeros where the
	// original saw ghosts.
	assert.InDelta(t, fPadded[1], f[0], 1e-15)
	assert.InDelta(t, fPadded[len(padded)-2], f[len(u)-1], 1e-15)
}

func TestResidualShapeMismatch(t *testing.T) {
	u := diffusion.Solution{1, 2, 3}
	prev := diffusion.Solution{1, 2}
	f := make(diffusion.Solution, 3)

	err := Residual(f, u, prev, 0.5, material.Constant(1))
	assert.ErrorIs(t, err, diffusion.ErrShapeMismatch)

	err = Residual(f[:2], u, u, 0.5, material.Constant(1))
	assert.ErrorIs(t, err, diffusion.ErrShapeMismatch)
}
