package renderer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/scene"
)

// nullLogger discards output
type nullLogger struct{}

func (nullLogger) Printf(format string, args ...interface{}) {}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"partial tiles", 70, 40, 32, 6},
		{"single tile", 10, 10, 32, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel must be covered by exactly one tile
			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("Pixel (%d,%d) covered %d times", i%tt.width, i/tt.width, n)
				}
			}
		})
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Vec3
		expected color.RGBA
	}{
		{"black", core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{"white", core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{"rounds to nearest", core.NewVec3(0.5, 0.2, 0.999), color.RGBA{128, 51, 255, 255}},
		{"clamps", core.NewVec3(-0.5, 1.5, 0), color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Vec3ToColor(tt.in); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRenderer_MatchesSequentialTrace(t *testing.T) {
	s := newTestScene(t, scene.RandomSpheres(60, 3, true), 70, 45)

	for _, reflections := range []bool{true, false} {
		config := RenderConfig{TileSize: 16, NumWorkers: 4}
		r := NewRenderer(s, DefaultTraceConfig(reflections), config, nullLogger{})

		fb, stats, err := r.RenderFramebuffer(context.Background(), nil)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if stats.TotalPixels != 70*45 {
			t.Errorf("Expected %d pixels in stats, got %d", 70*45, stats.TotalPixels)
		}
		if stats.HitPixels+stats.BackgroundPixels != stats.TotalPixels {
			t.Errorf("Hit and background pixels do not add up: %+v", stats)
		}

		tracer := r.Tracer()
		for y := 0; y < 45; y++ {
			for x := 0; x < 70; x++ {
				if expected := tracer.ResolveColor(x, y); fb.At(x, y) != expected {
					t.Fatalf("reflections=%t: pixel (%d,%d) rendered %v, traced %v", reflections, x, y, fb.At(x, y), expected)
				}
			}
		}
	}
}

func TestRenderer_ImageMatchesFramebuffer(t *testing.T) {
	s := newTestScene(t, scene.RandomSpheres(30, 8, false), 40, 40)
	r := NewRenderer(s, DefaultTraceConfig(false), DefaultRenderConfig(), nullLogger{})

	img, _, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 40) {
		t.Fatalf("Unexpected bounds %v", img.Bounds())
	}

	tracer := r.Tracer()
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if expected := Vec3ToColor(tracer.ResolveColor(x, y)); img.RGBAAt(x, y) != expected {
				t.Fatalf("Pixel (%d,%d) is %v, expected %v", x, y, img.RGBAAt(x, y), expected)
			}
		}
	}
}

func TestRenderer_EmptySceneIsBackground(t *testing.T) {
	s := newTestScene(t, nil, 33, 17)
	r := NewRenderer(s, DefaultTraceConfig(true), RenderConfig{TileSize: 8, NumWorkers: 2}, nullLogger{})

	img, stats, err := r.Render(context.Background(), nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.HitPixels != 0 || stats.BackgroundPixels != 33*17 {
		t.Errorf("Expected only background pixels, got %+v", stats)
	}

	expected := Vec3ToColor(scene.Background)
	for y := 0; y < 17; y++ {
		for x := 0; x < 33; x++ {
			if img.RGBAAt(x, y) != expected {
				t.Fatalf("Pixel (%d,%d) is %v, expected %v", x, y, img.RGBAAt(x, y), expected)
			}
		}
	}
}

func TestRenderer_TileCallback(t *testing.T) {
	s := newTestScene(t, scene.RandomSpheres(20, 1, true), 50, 30)
	r := NewRenderer(s, DefaultTraceConfig(true), RenderConfig{TileSize: 16, NumWorkers: 3}, nullLogger{})

	seen := make(map[int]bool)
	var pixels int
	_, stats, err := r.Render(context.Background(), func(result TileCompletionResult) {
		if result.TotalTiles != 8 {
			t.Errorf("Expected 8 tiles, got %d", result.TotalTiles)
		}
		if result.TileNumber != len(seen)+1 {
			t.Errorf("Expected tile number %d, got %d", len(seen)+1, result.TileNumber)
		}
		if seen[result.Tile.ID] {
			t.Errorf("Tile %d reported twice", result.Tile.ID)
		}
		seen[result.Tile.ID] = true
		pixels += result.Stats.TotalPixels
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(seen) != 8 {
		t.Errorf("Expected 8 tile callbacks, got %d", len(seen))
	}
	if pixels != stats.TotalPixels {
		t.Errorf("Tile stats cover %d pixels, total is %d", pixels, stats.TotalPixels)
	}
}

func TestRenderer_Cancelled(t *testing.T) {
	s := newTestScene(t, scene.RandomSpheres(20, 1, true), 64, 64)
	r := NewRenderer(s, DefaultTraceConfig(true), RenderConfig{TileSize: 8, NumWorkers: 2}, nullLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := r.Render(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
}

func TestRenderStats_MergeAndAverage(t *testing.T) {
	a := RenderStats{}
	a.AddPixel(PixelInfo{Hit: true, Bounces: 2, Candidates: 3})
	a.AddPixel(PixelInfo{Candidates: 1})

	b := RenderStats{}
	b.AddPixel(PixelInfo{Hit: true, Bounces: 4, Escaped: true, Candidates: 2})
	b.AddPixel(PixelInfo{Hit: true, InShadow: true, Candidates: 2})

	a.Merge(b)

	if a.TotalPixels != 4 || a.HitPixels != 3 || a.BackgroundPixels != 1 {
		t.Errorf("Unexpected pixel counts %+v", a)
	}
	if a.EscapedPixels != 1 || a.ShadowedPixels != 1 {
		t.Errorf("Unexpected escape/shadow counts %+v", a)
	}
	if a.TotalBounces != 6 || a.MaxBounces != 4 {
		t.Errorf("Unexpected bounce counts %+v", a)
	}
	if got := a.AverageCandidates(); got != 2 {
		t.Errorf("Expected 2 candidates per pixel, got %f", got)
	}
	if got := (RenderStats{}).AverageCandidates(); got != 0 {
		t.Errorf("Expected 0 for empty stats, got %f", got)
	}
}
