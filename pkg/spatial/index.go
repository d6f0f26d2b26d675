package spatial

import (
	"math"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/geometry"
)

// ShadowScale is how much larger the shadow index is than the image plane.
// Light-space coordinates of visible spheres fall well outside the view frustum.
const ShadowScale = 5.0

// cameraPlaneEpsilon is the closest a bounding-box corner may come to the
// camera plane before the sphere is treated as covering the whole image.
const cameraPlaneEpsilon = 1e-6

// everywhere overlaps every rectangle
var everywhere = Rect{
	MinX: math.Inf(-1), MinY: math.Inf(-1),
	MaxX: math.Inf(1), MaxY: math.Inf(1),
}

// ScreenBounds returns a rectangle on the image plane z=0 that contains the
// perspective projection, seen from (0, 0, camZ), of every point of the sphere.
// Projection preserves convexity, so the projected corners of the sphere's
// bounding box enclose its image.
func ScreenBounds(s geometry.Sphere, camZ float64) Rect {
	box := s.BoundingBox()
	if box.Max.Z >= camZ-cameraPlaneEpsilon {
		return everywhere
	}

	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, corner := range box.Corners() {
		scale := camZ / (camZ - corner.Z)
		u, v := corner.X*scale, corner.Y*scale
		r.MinX, r.MaxX = math.Min(r.MinX, u), math.Max(r.MaxX, u)
		r.MinY, r.MaxY = math.Min(r.MinY, v), math.Max(r.MaxY, v)
	}
	return r
}

// ShadowBounds returns the rectangle of (U, V) light-frame coordinates from
// which a ray along the frame axis can touch the sphere.
func ShadowBounds(s geometry.Sphere, frame core.Frame) Rect {
	reachU, reachV := frame.Reach()
	return shadowRect(s, frame, reachU, reachV)
}

func shadowRect(s geometry.Sphere, frame core.Frame, reachU, reachV float64) Rect {
	c := frame.Coords(s.Center)
	du := s.Radius * reachU
	dv := s.Radius * reachV
	return Rect{MinX: c.Y - du, MinY: c.Z - dv, MaxX: c.Y + du, MaxY: c.Z + dv}
}

// NewScreenIndex builds the primary index over the image plane. Ids are
// indices into spheres.
func NewScreenIndex(spheres []geometry.Sphere, halfExtent float64, depth int, camZ float64) *Quadtree {
	tree := NewQuadtree(NewSquare(halfExtent), depth)
	for i, s := range spheres {
		tree.Insert(i, ScreenBounds(s, camZ))
	}
	return tree
}

// NewShadowIndex builds the shadow index over the (U, V) plane of the light
// frame, ShadowScale times larger than the image plane. Ids are indices into spheres.
func NewShadowIndex(spheres []geometry.Sphere, halfExtent float64, depth int, frame core.Frame) *Quadtree {
	tree := NewQuadtree(NewSquare(halfExtent*ShadowScale), depth)
	reachU, reachV := frame.Reach()
	for i, s := range spheres {
		tree.Insert(i, shadowRect(s, frame, reachU, reachV))
	}
	return tree
}
