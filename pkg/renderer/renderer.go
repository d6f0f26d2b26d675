package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for parallel rendering
type RenderConfig struct {
	TileSize   int // Size of each tile (32x32 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	Tile       *Tile
	TileNumber int // Tiles completed so far, including this one (1-based)
	TotalTiles int
	Stats      RenderStats
}

// Renderer renders a whole image by distributing tiles over a worker pool
type Renderer struct {
	scene  *scene.Scene
	tracer *Tracer
	config RenderConfig
	logger core.Logger
}

// NewRenderer creates a renderer. The scene must be fully built; it is shared
// read-only by every worker.
func NewRenderer(s *scene.Scene, traceConfig TraceConfig, config RenderConfig, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	return &Renderer{
		scene:  s,
		tracer: NewTracer(s, traceConfig),
		config: config,
		logger: logger,
	}
}

// Tracer returns the tracer used for individual pixels
func (r *Renderer) Tracer() *Tracer {
	return r.tracer
}

// RenderFramebuffer traces every pixel into a framebuffer. It returns
// ctx.Err() if ctx is cancelled before all tiles are done. tileCallback, if
// not nil, is called from the calling goroutine after each tile.
func (r *Renderer) RenderFramebuffer(ctx context.Context, tileCallback func(TileCompletionResult)) (*Framebuffer, RenderStats, error) {
	camera := r.scene.Camera
	framebuffer := NewFramebuffer(camera.Width, camera.Height)
	tiles := NewTileGrid(camera.Width, camera.Height, r.config.TileSize)

	workerPool := NewWorkerPool(r.tracer, framebuffer, len(tiles), r.config.NumWorkers)
	r.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		camera.Width, camera.Height, len(tiles), workerPool.GetNumWorkers())

	startTime := time.Now()
	workerPool.Start(ctx)
	defer workerPool.Stop()

	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{}
	for i := 0; i < len(tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			r.logger.Printf("Rendering cancelled after %d of %d tiles\n", i, len(tiles))
			return nil, RenderStats{}, result.Error
		}

		stats.Merge(result.Stats)

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				Tile:       tiles[result.TaskID],
				TileNumber: i + 1,
				TotalTiles: len(tiles),
				Stats:      result.Stats,
			})
		}
	}

	r.logger.Printf("Render completed in %v (%d hits, %d bounces, %.2f candidates per pixel)\n",
		time.Since(startTime), stats.HitPixels, stats.TotalBounces, stats.AverageCandidates())

	return framebuffer, stats, nil
}

// Render traces every pixel and returns the 8-bit image
func (r *Renderer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	framebuffer, stats, err := r.RenderFramebuffer(ctx, tileCallback)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return framebuffer.ToRGBA(), stats, nil
}
