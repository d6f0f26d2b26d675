package scene

import (
	"sort"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/geometry"
)

// Preset names
const (
	PresetRandom = "random"
	PresetSingle = "single"
	PresetShadow = "shadow"
	PresetMirror = "mirror"
)

// PresetInfo describes a built-in scene
type PresetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type preset struct {
	description string
	spheres     func(cfg Config) []geometry.Sphere
}

var presets = map[string]preset{
	PresetRandom: {
		description: "Randomly placed spheres; count and seed come from the config",
		spheres: func(cfg Config) []geometry.Sphere {
			return RandomSpheres(cfg.Spheres, cfg.Seed, cfg.Reflections)
		},
	},
	PresetSingle: {
		description: "One red unit sphere at the origin",
		spheres: func(Config) []geometry.Sphere {
			return []geometry.Sphere{
				geometry.NewSphere(core.NewVec3(0, 0, 0), 1, core.NewVec3(1, 0, 0)),
			}
		},
	},
	PresetShadow: {
		description: "A large sphere shadowed by a smaller one placed toward the light",
		spheres: func(Config) []geometry.Sphere {
			light := DefaultLight().Direction
			return []geometry.Sphere{
				geometry.NewSphere(core.NewVec3(0, 0, 0), 3, core.NewVec3(0.9, 0.9, 0.9)),
				geometry.NewSphere(light.Multiply(5.5), 1, core.NewVec3(0.2, 0.4, 1)),
			}
		},
	},
	PresetMirror: {
		description: "Three closely packed spheres that reflect one another",
		spheres: func(Config) []geometry.Sphere {
			return []geometry.Sphere{
				geometry.NewSphere(core.NewVec3(-2.2, 0, 0), 2, core.NewVec3(1, 0.3, 0.3)),
				geometry.NewSphere(core.NewVec3(2.2, 0, 0), 2, core.NewVec3(0.3, 1, 0.3)),
				geometry.NewSphere(core.NewVec3(0, 3.8, -1), 2, core.NewVec3(0.3, 0.3, 1)),
			}
		},
	},
}

// ListPresets returns the built-in scenes sorted by name
func ListPresets() []PresetInfo {
	infos := make([]PresetInfo, 0, len(presets))
	for name, p := range presets {
		infos = append(infos, PresetInfo{Name: name, Description: p.description})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}
