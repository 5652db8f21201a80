// Package solver implements the implicit time-stepping engine: the
// nonlinear residual, its hand-derived tridiagonal Jacobian, and the
// Newton-Raphson iteration that roots the implicit-Euler equation at
// every timestep.
//
// Two interchangeable linear solvers back the Newton update: [Dense]
// (gonum LU on full storage, the reference numerics) and [Tridiag]
// (Thomas algorithm on three bands, O(n)).
package solver
