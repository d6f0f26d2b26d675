package server

import (
	"fmt"
	"testing"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/renderer"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Vec3
		expected string
	}{
		{"primary", core.NewVec3(1, 0, 0), "#ff0000"},
		{"rounds to nearest", core.NewVec3(0.5, 0.2, 0.999), "#8033ff"},
		{"clamps", core.NewVec3(-1, 2, 0.2), "#00ff33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hexColor(tt.in)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}

			// Must agree with the pixel written to rendered images
			rgba := renderer.Vec3ToColor(tt.in)
			if pixel := fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B); got != pixel {
				t.Errorf("Inspect color %s differs from image color %s", got, pixel)
			}
		})
	}
}
