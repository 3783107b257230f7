package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for every random stream of a render
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Validate rejects configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// MergeSamplingConfig overlays the non-zero fields of override onto base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetBackground() integrator.Background
	GetSamplingConfig() SamplingConfig
}

// Raytracer renders a whole image serially with a single random stream
type Raytracer struct {
	scene        Scene
	config       SamplingConfig
	tileRenderer *TileRenderer
}

// NewRaytracer creates a new raytracer for the scene's sampling config
func NewRaytracer(scene Scene) *Raytracer {
	config := scene.GetSamplingConfig()
	return &Raytracer{
		scene:        scene,
		config:       config,
		tileRenderer: NewTileRenderer(scene, newIntegrator(scene)),
	}
}

// newIntegrator builds the path tracer for the scene's depth and sky
func newIntegrator(scene Scene) integrator.Integrator {
	return integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:   scene.GetSamplingConfig().MaxDepth,
		Background: scene.GetBackground(),
	})
}

// RenderPass renders every pixel with the configured samples and returns the
// image. The same seed always produces the same image.
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	width, height := rt.config.Width, rt.config.Height

	pixelStats := newPixelStats(width, height)
	sampler := core.NewSeededSampler(rt.config.Seed)
	bounds := image.Rect(0, 0, width, height)

	stats := rt.tileRenderer.RenderTileBounds(bounds, pixelStats, sampler, rt.config.SamplesPerPixel)
	return assembleImage(pixelStats, bounds), stats
}

func newPixelStats(width, height int) [][]PixelStats {
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}
	return pixelStats
}

// assembleImage converts the accumulated pixels inside bounds into an image
// whose origin is bounds.Min
func assembleImage(pixelStats [][]PixelStats, bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, ColorToRGBA(pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// ColorToRGBA converts an averaged linear color to 8-bit RGBA with gamma 2
func ColorToRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: quantize(c.R),
		G: quantize(c.G),
		B: quantize(c.B),
		A: 255,
	}
}

func quantize(channel float64) uint8 {
	v := math32.Sqrt(math32.Max(0, math32.Min(1, float32(channel))))
	return uint8(255.99 * v)
}
