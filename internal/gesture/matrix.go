package gesture

import "math"

// Matrix is a 2D affine transform in the column-major form
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
//
// E and F are the translation.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Rotation returns a rotation by deg degrees.
func Rotation(deg float64) Matrix {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// Multiply returns m × n, the transform that applies n first and then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translation returns the translation component.
func (m Matrix) Translation() (x, y float64) {
	return m.E, m.F
}

// RotationDegrees returns the rotation component in degrees, in (-180, 180].
func (m Matrix) RotationDegrees() float64 {
	return math.Atan2(m.B, m.A) * 180 / math.Pi
}
