package matrix

import (
	"errors"
	"math"
)

// ErrShapeMismatch indicates that the operands of a factorization routine
// do not have compatible shapes.
var ErrShapeMismatch = errors.New("matrix: operand shapes are incompatible")

// Givens computes and applies one Givens rotation. The rotation is chosen
// to zero b(l2, col) against the pivot b(l1, col); it is applied to the
// columns col+1 … b.Cols() of b and to every column of the orthogonal
// accumulator q, and finally the pivot pair itself is overwritten with
// (√(c1²+c2²), 0).
//
// The rotation magnitude factors out the larger of |c1|, |c2| so that the
// intermediate squares cannot overflow. A zero pivot pair is a no-op.
//
// Complexity: O(b.Cols() + q.Cols()).
func Givens(b, q *Dense, l1, l2, col int) {
	c1 := b.at(l1, col)
	c2 := b.at(l2, col)
	if math.Abs(c1)+math.Abs(c2) == 0.0 {
		return // nothing to rotate
	}

	// Scale-stable magnitude: factor out the larger component.
	var sn float64
	if math.Abs(c2) >= math.Abs(c1) {
		sn = math.Sqrt(1.0+(c1/c2)*(c1/c2)) * math.Abs(c2)
	} else {
		sn = math.Sqrt(1.0+(c2/c1)*(c2/c1)) * math.Abs(c1)
	}
	s1 := c1 / sn
	s2 := c2 / sn

	// Apply the rotation to every column of q.
	var k int
	var sv1, sv2 float64
	for k = 1; k <= q.Cols(); k++ {
		sv1 = q.at(l1, k)
		sv2 = q.at(l2, k)
		q.set(l1, k, s1*sv1+s2*sv2)
		q.set(l2, k, -s2*sv1+s1*sv2)
	}

	// Apply the rotation to the trailing columns of b.
	for k = col + 1; k <= b.Cols(); k++ {
		sv1 = b.at(l1, k)
		sv2 = b.at(l2, k)
		b.set(l1, k, s1*sv1+s2*sv2)
		b.set(l2, k, -s2*sv1+s1*sv2)
	}

	// Overwrite the pivot pair with the rotated values.
	b.set(l1, col, sn)
	b.set(l2, col, 0.0)
}

// QRDecomp factors the tall matrix b in place by Givens rotations.
// q is reset to the identity and accumulates the rotations; on return
// b holds q·b(original), upper-triangular on its top b.Cols() rows, q is
// orthogonal, and the last row of q spans the left null space of b when
// b has exactly one more row than columns.
//
// Stage 1 (Validate): q must be square of order b.Rows(), and b must have
// at least as many rows as columns.
// Stage 2 (Execute): sweep columns left to right, zeroing subdiagonal
// entries with Givens rotations.
//
// Complexity: O(r·c²) time, no extra memory.
func QRDecomp(b, q *Dense) error {
	// Validate accumulator shape
	if q.Rows() != q.Cols() || q.Rows() != b.Rows() {
		return ErrShapeMismatch
	}
	// Validate tall orientation
	if b.Rows() < b.Cols() {
		return ErrShapeMismatch
	}

	q.Ident()
	var m, k int
	for m = 1; m <= b.Cols(); m++ { // iterate over pivot columns
		for k = m + 1; k <= b.Rows(); k++ { // zero entries below the pivot
			Givens(b, q, m, k, m)
		}
	}

	return nil
}

// NewtonStep performs one corrector iteration on the factored system
// (q, b) produced by QRDecomp. y holds the residual of length b.Cols();
// it is consumed in place by the triangular solve. u is the current
// iterate of length b.Rows(); the correction s = qᵀ·δ is subtracted from
// it. The returned value is ‖s‖₂, the distance moved by this step.
//
// In the basis of q the correction has no component along q's last row,
// so s is orthogonal to the tangent direction.
//
// Complexity: O(r·c).
func NewtonStep(q, b *Dense, u, y Vector) float64 {
	// Triangular solve against the top square block of b.
	var k, l int
	var yk float64
	for k = 1; k <= b.Cols(); k++ {
		yk = y.At(k)
		for l = 1; l <= k-1; l++ {
			yk -= b.at(l, k) * y.At(l)
		}
		y.SetAt(k, yk/b.at(k, k))
	}

	// Map through qᵀ and update the iterate.
	var d, s float64
	for k = 1; k <= b.Rows(); k++ {
		s = 0.0
		for l = 1; l <= b.Cols(); l++ {
			s += q.at(l, k) * y.At(l)
		}
		u.SetAt(k, u.At(k)-s)
		d += s * s
	}

	return math.Sqrt(d)
}
