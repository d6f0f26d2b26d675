package core

import (
	"fmt"
	"math"
)

// Frame is a coordinate system spanned by a primary axis and two auxiliary
// vectors. The three vectors need only be linearly independent.
type Frame struct {
	Axis Vec3 // First basis vector (the light direction for shadow lookups)
	U    Vec3
	V    Vec3

	// Pivoted selects SolveBasisPivoted instead of the plain Gauss-Jordan solve
	Pivoted bool
}

// NewFrame creates a frame. With pivoted set the basis is checked up front and
// ErrSingularBasis is returned for a degenerate triple; the plain solver
// performs no such check.
func NewFrame(axis, u, v Vec3, pivoted bool) (Frame, error) {
	f := Frame{Axis: axis, U: u, V: v, Pivoted: pivoted}
	if pivoted {
		if _, err := SolveBasisPivoted(axis, u, v, axis); err != nil {
			return Frame{}, fmt.Errorf("light frame %v %v %v: %w", axis, u, v, err)
		}
	}
	return f, nil
}

// Coords returns the coordinates of p along Axis, U and V (in X, Y, Z)
func (f Frame) Coords(p Vec3) Vec3 {
	if f.Pivoted {
		// NewFrame rejected singular bases, so the solve cannot fail here
		c, _ := SolveBasisPivoted(f.Axis, f.U, f.V, p)
		return c
	}
	return SolveBasis(f.Axis, f.U, f.V, p)
}

// Reach returns how far the U and V coordinates can move when p moves by a
// vector of unit length. These are the norms of the U and V rows of the
// inverse basis matrix.
func (f Frame) Reach() (u, v float64) {
	cx := f.Coords(NewVec3(1, 0, 0))
	cy := f.Coords(NewVec3(0, 1, 0))
	cz := f.Coords(NewVec3(0, 0, 1))

	u = math.Sqrt(cx.Y*cx.Y + cy.Y*cy.Y + cz.Y*cz.Y)
	v = math.Sqrt(cx.Z*cx.Z + cy.Z*cy.Z + cz.Z*cz.Z)
	return u, v
}
