package diffusion

import "errors"

// Domain errors for the implicit diffusion solver.
var (
	// ErrShapeMismatch indicates residual or Jacobian inputs of
	// inconsistent length.
	ErrShapeMismatch = errors.New("diffusion: shape mismatch")

	// ErrLinearSolveFailed indicates a numerically singular or
	// ill-conditioned Jacobian inside a Newton iteration.
	ErrLinearSolveFailed = errors.New("diffusion: linear solve failed")

	// ErrNonConvergence indicates the Newton loop exhausted its
	// iteration cap without meeting tolerance.
	ErrNonConvergence = errors.New("diffusion: newton iteration did not converge")

	// ErrInvalidGrid indicates a degenerate domain or point count.
	ErrInvalidGrid = errors.New("diffusion: invalid grid")

	// ErrInvalidState indicates a solution with NaN or Inf entries.
	ErrInvalidState = errors.New("diffusion: invalid state (NaN or Inf detected)")
)
