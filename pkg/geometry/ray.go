package geometry

import "github.com/df07/go-reflection-raytracer/pkg/core"

// Ray represents a ray with an origin, a direction and a reflection depth.
// Direction need not be unit length; hit parameters are in units of Direction.
type Ray struct {
	Origin    core.Vec3
	Direction core.Vec3
	Depth     int // Number of reflections that produced this ray
}

// NewRay creates a new ray
func NewRay(origin, direction core.Vec3, depth int) Ray {
	return Ray{Origin: origin, Direction: direction, Depth: depth}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) core.Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Reflect returns the ray mirrored about the unit normal n at point, one level deeper
func (r Ray) Reflect(point, n core.Vec3) Ray {
	return Ray{
		Origin:    point,
		Direction: r.Direction.Reflect(n),
		Depth:     r.Depth + 1,
	}
}
