package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/geometry"
	"github.com/df07/go-reflection-raytracer/pkg/spatial"
)

// Background is the color of rays that leave the scene
var Background = core.NewVec3(0.4, 0.6, 0.8)

// Light is a single directional light. Basis2 and Basis3 only need to be
// linearly independent of Direction; together they define light space.
type Light struct {
	Direction core.Vec3
	Basis2    core.Vec3
	Basis3    core.Vec3
}

// DefaultLight returns the standard light shining from (1, 1, 1)
func DefaultLight() Light {
	return Light{
		Direction: core.NewVec3(1, 1, 1).Normalize(),
		Basis2:    core.NewVec3(5, -3, -2).Normalize(),
		Basis3:    core.NewVec3(1, 7, -8).Normalize(),
	}
}

// Scene contains all the elements needed for rendering. It is read-only once
// New returns and may be shared between goroutines.
type Scene struct {
	Spheres     []geometry.Sphere
	Light       Light
	Frame       core.Frame // Light-space coordinate system
	Camera      Camera
	Background  core.Vec3
	Index       *spatial.Quadtree // Image-plane index for primary rays
	ShadowIndex *spatial.Quadtree // Light-space index for shadow rays
}

// New builds a scene and both of its spatial indices. The sphere slice is
// copied so later changes by the caller cannot reach the indices.
func New(spheres []geometry.Sphere, light Light, camera Camera, treeDepth int, pivoted bool) (*Scene, error) {
	frame, err := core.NewFrame(light.Direction, light.Basis2, light.Basis3, pivoted)
	if err != nil {
		return nil, err
	}

	for i, s := range spheres {
		if s.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d has radius %g: %w", i, s.Radius, ErrInvalidConfig)
		}
	}

	spheresCopy := make([]geometry.Sphere, len(spheres))
	copy(spheresCopy, spheres)

	return &Scene{
		Spheres:     spheresCopy,
		Light:       light,
		Frame:       frame,
		Camera:      camera,
		Background:  Background,
		Index:       spatial.NewScreenIndex(spheresCopy, camera.HalfExtent, treeDepth, camera.CamZ),
		ShadowIndex: spatial.NewShadowIndex(spheresCopy, camera.HalfExtent, treeDepth, frame),
	}, nil
}

// Build validates cfg and creates the scene it describes
func Build(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := cfg.Preset
	if name == "" {
		name = PresetRandom
	}
	spheres := presets[name].spheres(cfg)

	camera := Camera{
		Width:      cfg.Width,
		Height:     cfg.Height,
		HalfExtent: cfg.HalfExtent,
		CamZ:       cfg.CamZ,
	}
	return New(spheres, DefaultLight(), camera, cfg.TreeDepth, cfg.PartialPivoting)
}

// RandomSphere creates a sphere inside the [-8, 8] cube with a random color.
// Reflective scenes use larger spheres so mirror images stay visible.
func RandomSphere(random *rand.Rand, reflections bool) geometry.Sphere {
	x := random.Float64()*16 - 8
	y := random.Float64()*16 - 8
	z := random.Float64()*16 - 8

	var radius float64
	if reflections {
		radius = random.Float64()*0.4 + 0.2
	} else {
		radius = random.Float64()*0.1 + 0.05
	}

	color := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
	return geometry.NewSphere(core.NewVec3(x, y, z), radius, color)
}

// RandomSpheres generates count spheres from a deterministic seed
func RandomSpheres(count int, seed int64, reflections bool) []geometry.Sphere {
	random := rand.New(rand.NewSource(seed))
	spheres := make([]geometry.Sphere, count)
	for i := range spheres {
		spheres[i] = RandomSphere(random, reflections)
	}
	return spheres
}
