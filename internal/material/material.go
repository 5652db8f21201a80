package material

import "math"

// Model supplies the diffusivity k(u) together with its first and second
// derivatives. The solver trusts DK and DDK to be the exact derivatives
// of K; material_test verifies this for every constructor here, but
// nothing checks models built by hand.
type Model struct {
	Name string
	K    func(u float64) float64
	DK   func(u float64) float64
	DDK  func(u float64) float64
}

// Constant is the linear heat equation's k(u) = k0.
func Constant(k0 float64) Model {
	return Model{
		Name: "constant",
		K:    func(float64) float64 { return k0 },
		DK:   func(float64) float64 { return 0 },
		DDK:  func(float64) float64 { return 0 },
	}
}

// Rational is k(u) = k0 / (1 + u²), diffusivity dropping where the
// solution is large. Hot regions hold their heat.
func Rational(k0 float64) Model {
	return Model{
		Name: "rational",
		K: func(u float64) float64 {
			return k0 / (1 + u*u)
		},
		DK: func(u float64) float64 {
			d := 1 + u*u
			return -2 * k0 * u / (d * d)
		},
		DDK: func(u float64) float64 {
			d := 1 + u*u
			return k0 * (6*u*u - 2) / (d * d * d)
		},
	}
}

// Quadratic is k(u) = k0 (1 + u²), diffusivity growing with the
// solution. Hot regions flatten faster.
func Quadratic(k0 float64) Model {
	return Model{
		Name: "quadratic",
		K: func(u float64) float64 {
			return k0 * (1 + u*u)
		},
		DK: func(u float64) float64 {
			return 2 * k0 * u
		},
		DDK: func(float64) float64 {
			return 2 * k0
		},
	}
}

// Exponential is k(u) = k0 e^(alpha u), the Arrhenius-style model.
func Exponential(k0, alpha float64) Model {
	return Model{
		Name: "exponential",
		K: func(u float64) float64 {
			return k0 * math.Exp(alpha*u)
		},
		DK: func(u float64) float64 {
			return k0 * alpha * math.Exp(alpha*u)
		},
		DDK: func(u float64) float64 {
			return k0 * alpha * alpha * math.Exp(alpha*u)
		},
	}
}
