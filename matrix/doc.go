// Package matrix offers the dense linear-algebra kernel for the
// correspondence tracer.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with 1-based accessors, matching
//     the natural indexing of the continuation algorithm (rows, columns,
//     players and strategies all count from 1).
//   - Vector, a 1-based float64 vector with the handful of operations the
//     predictor-corrector loop needs (dot product, Euclidean norm).
//   - Givens rotations and a QR decomposition for tall (n+1)×n matrices;
//     after QRDecomp the last row of the orthogonal accumulator spans the
//     left null space of the input, which is the curve tangent.
//   - NewtonStep, one corrector iteration against a factored augmented
//     system.
//
// Dense matrices are best for the small, fully populated Jacobians this
// module works with, where O(n²) memory and O(n³) factorization time are
// acceptable.
package matrix
