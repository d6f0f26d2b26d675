package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/renderer"
	"github.com/df07/go-reflection-raytracer/pkg/scene"
	"github.com/df07/go-reflection-raytracer/web/server"
)

// options holds everything parsed from the command line
type options struct {
	Config  scene.Config
	Workers int
	Out     string
	Serve   bool
	Port    int
	Help    bool

	printDefaults func()
}

// parseFlags parses args over the default config. A -config file is applied
// first and flags given explicitly override it.
func parseFlags(args []string, output io.Writer) (options, error) {
	defaults := scene.DefaultConfig()
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)

	preset := fs.String("preset", defaults.Preset, "Scene preset: random, single, shadow or mirror")
	spheres := fs.Int("spheres", defaults.Spheres, "Number of random spheres")
	depth := fs.Int("depth", defaults.TreeDepth, "Maximum quadtree depth")
	reflect := fs.Bool("reflect", defaults.Reflections, "Trace mirror reflections")
	shadows := fs.Bool("shadows", defaults.Shadows, "Test shadows even when reflecting")
	seed := fs.Int64("seed", defaults.Seed, "Random seed for sphere generation")
	width := fs.Int("width", defaults.Width, "Image width in pixels")
	height := fs.Int("height", defaults.Height, "Image height in pixels")
	pivot := fs.Bool("pivot", defaults.PartialPivoting, "Use partial pivoting for light-space coordinates")
	configPath := fs.String("config", "", "JSON scene config file")

	opts := options{}
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect)")
	fs.StringVar(&opts.Out, "out", "", "Output PNG path (default output/render_<timestamp>.png)")
	fs.BoolVar(&opts.Serve, "serve", false, "Start the web server instead of rendering once")
	fs.IntVar(&opts.Port, "port", 8080, "Port for -serve")
	fs.BoolVar(&opts.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.printDefaults = func() {
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := scene.LoadConfig(*configPath, cfg)
		if err != nil {
			return opts, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "preset":
			cfg.Preset = *preset
		case "spheres":
			cfg.Spheres = *spheres
		case "depth":
			cfg.TreeDepth = *depth
		case "reflect":
			cfg.Reflections = *reflect
		case "shadows":
			cfg.Shadows = *shadows
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "pivot":
			cfg.PartialPivoting = *pivot
		}
	})

	opts.Config = cfg
	return opts, nil
}

// outputPath returns out, or a timestamped file under output/ when out is empty
func outputPath(out string, now time.Time) string {
	if out != "" {
		return out
	}
	return filepath.Join("output", fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// run builds the scene, renders it and writes the PNG
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	cfg := opts.Config
	if cfg.TreeDepth > scene.RecommendedTreeDepth {
		logger.Printf("Warning: tree depth %d above %d makes index construction slow\n", cfg.TreeDepth, scene.RecommendedTreeDepth)
	}

	sceneObj, err := scene.Build(cfg)
	if err != nil {
		return "", err
	}

	stats, err := scene.Summarize(sceneObj)
	if err != nil {
		return "", fmt.Errorf("summarizing scene: %w", err)
	}
	stats.Log(logger)

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = opts.Workers
	raytracer := renderer.NewRenderer(sceneObj, renderer.TraceConfigFor(cfg), renderConfig, logger)

	img, renderStats, err := raytracer.Render(ctx, nil)
	if err != nil {
		return "", err
	}
	logger.Printf("Pixels: %d hit, %d background, %d escaped, %d shadowed (max %d bounces)\n",
		renderStats.HitPixels, renderStats.BackgroundPixels, renderStats.EscapedPixels,
		renderStats.ShadowedPixels, renderStats.MaxBounces)
	logger.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := outputPath(opts.Out, time.Now())
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := gg.NewContextForRGBA(img).SavePNG(filename); err != nil {
		return "", fmt.Errorf("saving PNG: %w", err)
	}
	return filename, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	if opts.Help {
		fmt.Println("Reflection Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		opts.printDefaults()
		fmt.Println()
		fmt.Println("Available presets:")
		for _, p := range scene.ListPresets() {
			fmt.Printf("  %-8s %s\n", p.Name, p.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/render_<timestamp>.png unless -out is given")
		return
	}

	if opts.Serve {
		if err := server.NewServer(opts.Port).Start(); err != nil {
			fmt.Printf("Error starting server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Ctrl-C cancels the render between tiles
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	fmt.Println("Starting Reflection Raytracer...")
	filename, err := run(ctx, opts, renderer.NewDefaultLogger())
	stop()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}
