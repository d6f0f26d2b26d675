package renderer

import (
	"math"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/geometry"
	"github.com/df07/go-reflection-raytracer/pkg/scene"
)

// MaxReflectionDepth is the default ceiling on mirror bounces per pixel
const MaxReflectionDepth = 5

// TraceConfig contains shading configuration
type TraceConfig struct {
	Reflections         bool    // Follow mirror reflections from the first hit
	Shadows             bool    // Test the terminal hit for shadows
	MaxReflectionDepth  int     // Hard ceiling on reflection bounces
	BackgroundDarkening float64 // Scale applied to the background seen in a reflection
	AmbientFloor        float64 // Intensity of a surface in shadow
}

// DefaultTraceConfig returns the standard shading values. Shadows are traced
// only when reflections are off.
func DefaultTraceConfig(reflections bool) TraceConfig {
	return TraceConfig{
		Reflections:         reflections,
		Shadows:             !reflections,
		MaxReflectionDepth:  MaxReflectionDepth,
		BackgroundDarkening: 0.8,
		AmbientFloor:        0.1,
	}
}

// TraceConfigFor derives the shading configuration from a scene config
func TraceConfigFor(cfg scene.Config) TraceConfig {
	tc := DefaultTraceConfig(cfg.Reflections)
	tc.Shadows = cfg.ShadowsEnabled()
	return tc
}

// PixelInfo describes how a pixel's color was found
type PixelInfo struct {
	Hit        bool // The primary ray hit a sphere
	Bounces    int  // Reflection rays that found another sphere
	Escaped    bool // A reflection ray left the scene
	InShadow   bool // The terminal hit was in shadow
	Candidates int  // Spheres the primary index returned
}

// Tracer resolves pixel colors against a built scene. It holds no mutable
// state, so one Tracer may serve any number of goroutines.
type Tracer struct {
	scene  *scene.Scene
	config TraceConfig
}

// NewTracer creates a tracer for a scene
func NewTracer(s *scene.Scene, config TraceConfig) *Tracer {
	return &Tracer{scene: s, config: config}
}

// Config returns the tracer's shading configuration
func (t *Tracer) Config() TraceConfig {
	return t.config
}

// ResolveColor returns the color of pixel (x, y) with channels in [0, 1]
func (t *Tracer) ResolveColor(x, y int) core.Vec3 {
	color, _ := t.Trace(x, y)
	return color
}

// Trace returns the color of pixel (x, y) along with how it was found
func (t *Tracer) Trace(x, y int) (core.Vec3, PixelInfo) {
	info := PixelInfo{}

	id, hitT, ray := t.primaryHit(x, y, &info)
	if id < 0 {
		return t.scene.Background, info
	}
	info.Hit = true

	return t.resolve(id, ray, ray.At(hitT), &info), info
}

// Inspection describes what the camera sees through a single pixel
type Inspection struct {
	Sphere   int       // Index of the sphere hit by the primary ray, -1 for none
	Point    core.Vec3 // Primary hit point
	Normal   core.Vec3 // Surface normal at Point
	Distance float64   // Distance from the camera to Point
	Color    core.Vec3 // Resolved pixel color
	Info     PixelInfo
}

// Inspect traces pixel (x, y) and reports the primary hit alongside the color
func (t *Tracer) Inspect(x, y int) Inspection {
	color, info := t.Trace(x, y)
	inspection := Inspection{Sphere: -1, Color: color, Info: info}

	id, hitT, ray := t.primaryHit(x, y, &PixelInfo{})
	if id < 0 {
		return inspection
	}

	inspection.Sphere = id
	inspection.Point = ray.At(hitT)
	inspection.Normal = t.scene.Spheres[id].Normal(inspection.Point)
	inspection.Distance = hitT * ray.Direction.Length()
	return inspection
}

// primaryHit casts the camera ray through pixel (x, y) and returns the index
// of the nearest sphere, or -1 with t=+Inf when nothing is hit.
func (t *Tracer) primaryHit(x, y int, info *PixelInfo) (int, float64, geometry.Ray) {
	camera := t.scene.Camera
	eye := camera.Position()
	q := camera.ImagePlaneCoord(float64(x), float64(y))
	ray := geometry.NewRay(eye, q.Subtract(eye), 0)

	closest := -1
	closestT := math.Inf(1)
	candidates := t.scene.Index.Query(q.X, q.Y)
	info.Candidates = len(candidates)

	for _, id := range candidates {
		if hit, ok := t.scene.Spheres[id].Hit(ray); ok && hit < closestT {
			closest = id
			closestT = hit
		}
	}
	return closest, closestT, ray
}

// resolve follows reflections from a hit on sphere id until the depth ceiling,
// an escape, or a terminal shade.
func (t *Tracer) resolve(id int, incident geometry.Ray, point core.Vec3, info *PixelInfo) core.Vec3 {
	spheres := t.scene.Spheres

	for t.config.Reflections && incident.Depth < t.config.MaxReflectionDepth {
		reflection := incident.Reflect(point, spheres[id].Normal(point))

		// Every other sphere is a candidate; reflections bypass the image index
		next := -1
		nextT := math.Inf(-1)
		for i := range spheres {
			if i == id {
				continue
			}
			if hit, ok := spheres[i].ReflectHit(reflection); ok && hit > nextT {
				next = i
				nextT = hit
			}
		}

		if next < 0 {
			info.Escaped = true
			return t.scene.Background.Multiply(t.config.BackgroundDarkening)
		}

		info.Bounces++
		id, incident, point = next, reflection, reflection.At(nextT)
	}

	inShadow := t.config.Shadows && t.InShadow(point)
	info.InShadow = inShadow
	return spheres[id].Shade(point, t.scene.Light.Direction, inShadow, t.config.AmbientFloor)
}

// InShadow reports whether any sphere blocks the light from point.
// Candidates come from the light-space index and are moved so that point
// sits at the origin before casting a ray along the light direction.
func (t *Tracer) InShadow(point core.Vec3) bool {
	coords := t.scene.Frame.Coords(point)
	if !coords.IsFinite() {
		// The unpivoted solve divides by zero on a singular light basis
		return false
	}
	shadowRay := geometry.NewRay(core.Vec3{}, t.scene.Light.Direction, 0)
	offset := point.Negate()

	for _, id := range t.scene.ShadowIndex.Query(coords.Y, coords.Z) {
		if _, ok := t.scene.Spheres[id].Translate(offset).Hit(shadowRay); ok {
			return true
		}
	}
	return false
}
