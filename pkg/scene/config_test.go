package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *Config)
		expectError bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero spheres", func(c *Config) { c.Spheres = 0 }, false},
		{"negative spheres", func(c *Config) { c.Spheres = -1 }, true},
		{"zero depth", func(c *Config) { c.TreeDepth = 0 }, true},
		{"negative depth", func(c *Config) { c.TreeDepth = -3 }, true},
		{"depth too large", func(c *Config) { c.TreeDepth = MaxTreeDepth + 1 }, true},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -10 }, true},
		{"zero half extent", func(c *Config) { c.HalfExtent = 0 }, true},
		{"camera behind plane", func(c *Config) { c.CamZ = -5 }, true},
		{"known preset", func(c *Config) { c.Preset = PresetShadow }, false},
		{"empty preset", func(c *Config) { c.Preset = "" }, false},
		{"unknown preset", func(c *Config) { c.Preset = "nonexistent" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.expectError {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ShadowsEnabled(t *testing.T) {
	tests := []struct {
		reflections, shadows, expected bool
	}{
		{false, false, true},
		{false, true, true},
		{true, false, false},
		{true, true, true},
	}

	for _, tt := range tests {
		cfg := Config{Reflections: tt.reflections, Shadows: tt.shadows}
		if got := cfg.ShadowsEnabled(); got != tt.expected {
			t.Errorf("reflections=%t shadows=%t: expected %t, got %t", tt.reflections, tt.shadows, tt.expected, got)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps base values", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		if err := os.WriteFile(path, []byte(`{"spheres": 12, "reflections": false}`), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(path, DefaultConfig())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Spheres != 12 || cfg.Reflections {
			t.Errorf("Expected file values to apply, got %+v", cfg)
		}
		if cfg.TreeDepth != DefaultConfig().TreeDepth || cfg.Width != DefaultConfig().Width {
			t.Errorf("Expected defaults for missing fields, got %+v", cfg)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		if err := os.WriteFile(path, []byte(`{"treeDepth": 0}`), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(path, DefaultConfig()); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte(`{"spheres": `), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(path, DefaultConfig()); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(dir, "missing.json"), DefaultConfig()); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected os.ErrNotExist, got %v", err)
		}
	})
}
