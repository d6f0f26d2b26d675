package core

import (
	"errors"
	"math"
)

// ErrSingularBasis is returned by SolveBasisPivoted when the basis vectors are
// not linearly independent.
var ErrSingularBasis = errors.New("basis vectors are linearly dependent")

// SingularTolerance is the smallest pivot magnitude SolveBasisPivoted accepts
const SingularTolerance = 1e-12

// augmented builds the 3x4 system whose columns are a, b, c and right-hand side d
func augmented(a, b, c, d Vec3) [3][4]float64 {
	return [3][4]float64{
		{a.X, b.X, c.X, d.X},
		{a.Y, b.Y, c.Y, d.Y},
		{a.Z, b.Z, c.Z, d.Z},
	}
}

// SolveBasis returns the coordinates of d in the basis {a, b, c}.
//
// The system is reduced to row echelon form by Gauss-Jordan elimination using
// the diagonal entry of each row as its pivot, without row exchanges. A basis
// that is singular, or one whose leading minors vanish, divides by a zero pivot
// and yields Inf/NaN coordinates. Use SolveBasisPivoted when the basis is not
// known to be well conditioned.
func SolveBasis(a, b, c, d Vec3) Vec3 {
	m := augmented(a, b, c, d)

	for i := 0; i < 3; i++ {
		if pivot := m[i][i]; pivot != 1 {
			inv := 1 / pivot
			for j := 0; j < 4; j++ {
				m[i][j] *= inv
			}
		}

		// Clear column i from every other row
		for r := 0; r < 3; r++ {
			factor := m[r][i]
			if r == i || factor == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				m[r][j] -= factor * m[i][j]
			}
		}
	}

	return Vec3{m[0][3], m[1][3], m[2][3]}
}

// SolveBasisPivoted is SolveBasis with partial pivoting: each column takes the
// remaining row with the largest magnitude entry as its pivot row. Results can
// differ from SolveBasis in the last bits of precision.
func SolveBasisPivoted(a, b, c, d Vec3) (Vec3, error) {
	m := augmented(a, b, c, d)

	for i := 0; i < 3; i++ {
		best := i
		for r := i + 1; r < 3; r++ {
			if math.Abs(m[r][i]) > math.Abs(m[best][i]) {
				best = r
			}
		}
		if math.Abs(m[best][i]) < SingularTolerance {
			return Vec3{}, ErrSingularBasis
		}
		m[i], m[best] = m[best], m[i]

		inv := 1 / m[i][i]
		for j := 0; j < 4; j++ {
			m[i][j] *= inv
		}

		for r := 0; r < 3; r++ {
			factor := m[r][i]
			if r == i || factor == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				m[r][j] -= factor * m[i][j]
			}
		}
	}

	return Vec3{m[0][3], m[1][3], m[2][3]}, nil
}
