package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid scene config")

const (
	// MaxTreeDepth bounds quadtree depth; leaf count grows as 4^depth
	MaxTreeDepth = 16
	// RecommendedTreeDepth is the depth above which building gets slow
	RecommendedTreeDepth = 10
)

// Config contains everything needed to generate and render a scene
type Config struct {
	Preset      string `json:"preset,omitempty"` // Scene preset, "random" when empty
	Spheres     int    `json:"spheres"`          // Number of random spheres
	TreeDepth   int    `json:"treeDepth"`        // Maximum quadtree depth for both indices
	Reflections bool   `json:"reflections"`      // Trace mirror reflections
	Shadows     bool   `json:"shadows"`          // Test shadows even when reflecting
	Seed        int64  `json:"seed"`             // Random seed for sphere generation

	Width      int     `json:"width"`      // Image width in pixels
	Height     int     `json:"height"`     // Image height in pixels
	HalfExtent float64 `json:"halfExtent"` // Half the side of the image plane
	CamZ       float64 `json:"camZ"`       // Camera distance along the view axis

	PartialPivoting bool `json:"partialPivoting,omitempty"` // Solve light-space coordinates with partial pivoting
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Preset:      PresetRandom,
		Spheres:     100,
		TreeDepth:   6,
		Reflections: true,
		Seed:        42,
		Width:       512,
		Height:      512,
		HalfExtent:  10.0,
		CamZ:        20.0,
	}
}

// ShadowsEnabled reports whether terminal hits get a shadow test.
// Without reflections shadows are always traced.
func (c Config) ShadowsEnabled() bool {
	return c.Shadows || !c.Reflections
}

// Validate checks the config for values the renderer cannot work with
func (c Config) Validate() error {
	switch {
	case c.Spheres < 0:
		return fmt.Errorf("sphere count %d is negative: %w", c.Spheres, ErrInvalidConfig)
	case c.TreeDepth <= 0:
		return fmt.Errorf("tree depth %d must be positive: %w", c.TreeDepth, ErrInvalidConfig)
	case c.TreeDepth > MaxTreeDepth:
		return fmt.Errorf("tree depth %d exceeds %d: %w", c.TreeDepth, MaxTreeDepth, ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size %dx%d must be positive: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.HalfExtent <= 0:
		return fmt.Errorf("image plane half-extent %g must be positive: %w", c.HalfExtent, ErrInvalidConfig)
	case c.CamZ <= 0:
		return fmt.Errorf("camera distance %g must be positive: %w", c.CamZ, ErrInvalidConfig)
	}

	if c.Preset != "" {
		if _, ok := presets[c.Preset]; !ok {
			return fmt.Errorf("unknown preset %q: %w", c.Preset, ErrInvalidConfig)
		}
	}
	return nil
}

// LoadConfig reads a JSON config file on top of base. Fields missing from the
// file keep their values from base.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
