package profile

import (
	"math"

	"github.com/san-kum/heatlab/internal/diffusion"
)

// Profile is an initial heat distribution, sampled onto the interior
// grid points to seed a run. Values at the domain endpoints are ignored
// since the boundaries are clamped to zero.
type Profile func(x float64) float64

// Gaussian is a bump of the given amplitude centered at center.
func Gaussian(center, width, amp float64) Profile {
	return func(x float64) float64 {
		d := (x - center) / width
		return amp * math.Exp(-d*d)
	}
}

// Triangle is a linear hat: amp at center, zero beyond width on either
// side. With width at or below dx it degenerates to a single-point
// spike, the classic impulse test.
func Triangle(center, width, amp float64) Profile {
	return func(x float64) float64 {
		d := math.Abs(x-center) / width
		if d >= 1 {
			return 0
		}
		return amp * (1 - d)
	}
}

// Sine is mode half-waves of the given amplitude across [a, b]. Mode 1
// is the slowest-decaying eigenfunction of the linear problem.
func Sine(a, b float64, mode int, amp float64) Profile {
	return func(x float64) float64 {
		return amp * math.Sin(float64(mode)*math.Pi*(x-a)/(b-a))
	}
}

// Plateau is a flat region of the given amplitude between lo and hi,
// zero elsewhere. Its sharp shoulders exercise the nonlinear terms.
func Plateau(lo, hi, amp float64) Profile {
	return func(x float64) float64 {
		if x < lo || x > hi {
			return 0
		}
		return amp
	}
}

// Sample evaluates p at the interior points of g.
func Sample(p Profile, g diffusion.Grid) diffusion.Solution {
	xs := g.Interior()
	u := make(diffusion.Solution, len(xs))
	for i, x := range xs {
		u[i] = p(x)
	}
	return u
}
