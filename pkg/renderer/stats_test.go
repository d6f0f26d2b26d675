package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	tests := []struct {
		name     string
		pixels   []color.RGBA
		expected float64
	}{
		// Rec. 709 weights sum to one, so red+green+blue+black averages to 1/4
		{"primaries and black", []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {0, 0, 0, 255}}, 0.25},
		{"white", []color.RGBA{{255, 255, 255, 255}}, 1.0},
		{"green only", []color.RGBA{{0, 255, 0, 255}}, 0.7152},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, len(tt.pixels), 1))
			for x, c := range tt.pixels {
				img.SetRGBA(x, 0, c)
			}
			if got := CalculateAverageLuminance(img); math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("Expected average luminance %f, got %f", tt.expected, got)
			}
		})
	}

	if got := CalculateAverageLuminance(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != 0 {
		t.Errorf("Expected 0 for an empty image, got %f", got)
	}
}
