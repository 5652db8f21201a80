// Package diffusion provides the core types for the 1D nonlinear heat
// equation solver.
//
// The governing equation is u_t = (k(u) u_x)_x on [A, B] with zero
// Dirichlet boundaries. The package defines:
//
//   - [Solution]: the interior grid samples of u
//   - [Grid]: the spatial discretization
//   - [Frame]: one timestep's boundary-padded output
//   - [Metric], [Observer]: per-step consumers
//
// The solver itself lives in internal/solver (residual, Jacobian,
// Newton iteration) and internal/stepper (the outer time loop).
//
// # Ownership
//
// A Stepper owns the single evolving Solution; Newton iterations work
// on a copy. Frames handed to observers carry fresh padded vectors, so
// consumers never share mutable state with the solver.
package diffusion
