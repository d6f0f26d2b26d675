package scene

import "github.com/df07/go-reflection-raytracer/pkg/core"

// Camera looks down the -Z axis from (0, 0, CamZ) through an image plane at
// z=0 spanning [-HalfExtent, HalfExtent] on both axes.
type Camera struct {
	Width      int
	Height     int
	HalfExtent float64
	CamZ       float64
}

// Position returns the eye point
func (c Camera) Position() core.Vec3 {
	return core.NewVec3(0, 0, c.CamZ)
}

// ImagePlaneCoord maps pixel (u, v) to the image plane. Pixel rows grow
// downwards while the plane's Y axis grows upwards.
func (c Camera) ImagePlaneCoord(u, v float64) core.Vec3 {
	return core.NewVec3(
		c.HalfExtent*(2*u/float64(c.Width)-1),
		-c.HalfExtent*(2*v/float64(c.Height)-1),
		0,
	)
}
