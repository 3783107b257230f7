package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType string
	Width     int
	Height    int
	Samples   int
	MaxDepth  int
	Seed      int64
	Workers   int
	Passes    int
	TileSize  int
	Serial    bool
	Output    string
}

func main() {
	config, err := parseFlags(os.Args[1:])
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags reads options from args. Zero values mean "use the scene's default".
func parseFlags(args []string) (Config, error) {
	var config Config
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&config.SceneType, "scene", "default", "Scene: "+strings.Join(scene.SceneNames(), ", "))
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = keep scene aspect ratio)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Maximum bounces (0 = scene default)")
	fs.Int64Var(&config.Seed, "seed", 0, "Random seed (0 = scene default)")
	fs.IntVar(&config.Workers, "workers", 0, "Parallel workers (0 = CPU count)")
	fs.IntVar(&config.Passes, "passes", 5, "Progressive passes")
	fs.IntVar(&config.TileSize, "tile", 32, "Tile size in pixels")
	fs.BoolVar(&config.Serial, "serial", false, "Render on a single goroutine with one random stream")
	fs.StringVar(&config.Output, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Monte Carlo path tracer")
		fmt.Fprintln(fs.Output(), "Usage: pathtracer [options]")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(fs.Output(), "  %-8s %s\n", info.ID, info.Description)
		}
	}

	if err := fs.Parse(args); err != nil {
		return config, err
	}

	if config.Width < 0 || config.Height < 0 || config.Samples < 0 || config.MaxDepth < 0 {
		return config, fmt.Errorf("width, height, samples and depth must not be negative")
	}
	if config.Passes <= 0 {
		return config, fmt.Errorf("passes must be positive, got %d", config.Passes)
	}
	if config.TileSize <= 0 {
		return config, fmt.Errorf("tile size must be positive, got %d", config.TileSize)
	}
	return config, nil
}

// createScene builds the requested scene and applies the size and sampling overrides
func createScene(config Config) (*scene.Scene, error) {
	s, err := scene.Create(config.SceneType)
	if err != nil {
		return nil, err
	}

	override := renderer.SamplingConfig{
		Width:           config.Width,
		Height:          config.Height,
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.MaxDepth,
		Seed:            config.Seed,
	}
	if config.Width > 0 && config.Height == 0 {
		base := s.SamplingConfig
		override.Height = max(1, config.Width*base.Height/base.Width)
	}

	if err := s.Configure(override); err != nil {
		return nil, err
	}
	return s, nil
}

func run(config Config, logger core.Logger) error {
	s, err := createScene(config)
	if err != nil {
		return err
	}

	sampling := s.SamplingConfig
	logger.Printf("Rendering %s: %dx%d, %d samples/pixel, depth %d, %d primitives\n",
		config.SceneType, sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth, s.GetPrimitiveCount())

	startTime := time.Now()
	var img *image.RGBA
	var stats renderer.RenderStats
	if config.Serial {
		img, stats = renderer.NewRaytracer(s).RenderPass()
	} else {
		img, stats, err = renderProgressive(s, config, logger)
		if err != nil {
			return err
		}
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename := config.Output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", config.SceneType, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := loaders.SavePNG(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// renderProgressive runs every pass and returns the final image
func renderProgressive(s *scene.Scene, config Config, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	progressiveConfig := renderer.ProgressiveConfig{
		TileSize:       config.TileSize,
		InitialSamples: 1,
		MaxPasses:      config.Passes,
		NumWorkers:     config.Workers,
	}

	pr, err := renderer.NewProgressiveRaytracer(s, progressiveConfig, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	passChan, _, errChan := pr.RenderProgressive(context.Background(), renderer.RenderOptions{})

	var last renderer.PassResult
	for result := range passChan {
		last = result
	}
	if err := <-errChan; err != nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("progressive render failed: %w", err)
	}
	if last.Image == nil {
		return nil, renderer.RenderStats{}, fmt.Errorf("progressive render produced no passes")
	}
	return last.Image, last.Stats, nil
}
