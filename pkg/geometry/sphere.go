package geometry

import (
	"math"

	"github.com/df07/go-reflection-raytracer/pkg/core"
)

// HitEpsilon keeps rays from hitting the surface they start on
const HitEpsilon = 0.01

// Sphere represents a diffuse sphere
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3 // Diffuse color, each channel in [0,1]
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Vec3) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// Translate returns a copy of the sphere moved by offset
func (s Sphere) Translate(offset core.Vec3) Sphere {
	s.Center = s.Center.Add(offset)
	return s
}

// roots solves |o + t*d - c|^2 = r^2 and returns the roots in ascending order
func (s Sphere) roots(ray Ray) (t0, t1 float64, ok bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2(halfB)t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB - sqrtD) / a, (-halfB + sqrtD) / a, true
}

// Hit returns the smallest root beyond HitEpsilon. A miss returns +Inf and false.
func (s Sphere) Hit(ray Ray) (float64, bool) {
	t0, t1, ok := s.roots(ray)
	if !ok {
		return math.Inf(1), false
	}
	if t0 > HitEpsilon {
		return t0, true
	}
	if t1 > HitEpsilon {
		return t1, true
	}
	return math.Inf(1), false
}

// ReflectHit returns the root below -HitEpsilon that is closest to zero.
// Reflection rays find their next surface at negative t. A miss returns -Inf and false.
func (s Sphere) ReflectHit(ray Ray) (float64, bool) {
	t0, t1, ok := s.roots(ray)
	if !ok {
		return math.Inf(-1), false
	}
	if t1 < -HitEpsilon {
		return t1, true
	}
	if t0 < -HitEpsilon {
		return t0, true
	}
	return math.Inf(-1), false
}

// Normal returns the outward unit normal at a point on the surface
func (s Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Shade returns the diffuse color at point for a directional light.
// In shadow the Lambertian term is replaced by the ambient intensity.
func (s Sphere) Shade(point, light core.Vec3, inShadow bool, ambient float64) core.Vec3 {
	intensity := math.Max(0, s.Normal(point).Dot(light))
	if inShadow {
		intensity = ambient
	}
	return s.Color.Multiply(intensity).Clamp(0, 1)
}

// BoundingBox returns the axis-aligned box enclosing the sphere
func (s Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
