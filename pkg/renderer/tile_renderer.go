package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific random stream for deterministic results
}

// NewTile creates a new tile whose random stream is derived from seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(seed + int64(id)),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders rectangular pixel regions with an integrator.
// It holds no mutable state and may be shared between workers.
type TileRenderer struct {
	scene      Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
	}
}

// RenderTileBounds tops up every pixel within bounds to targetSamples.
// Pixels are visited row by row so a given sampler stream always lands on
// the same samples.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samplesUsed := tr.samplePixel(x, y, &pixelStats[y][x], sampler, targetSamples)
			stats.addPixel(samplesUsed)
		}
	}

	stats.finalize()
	return stats
}

// samplePixel adds jittered samples to ps until it holds targetSamples
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, sampler core.Sampler, targetSamples int) int {
	camera := tr.scene.GetCamera()
	world := tr.scene.GetWorld()
	config := tr.scene.GetSamplingConfig()

	// Image rows run top-down, viewport t runs bottom-up
	row := config.Height - 1 - y

	initialSampleCount := ps.SampleCount
	for ps.SampleCount < targetSamples {
		du, dv := sampler.Get2D()
		s := (float64(x) + du) / float64(config.Width)
		t := (float64(row) + dv) / float64(config.Height)

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, world, sampler))
	}

	return ps.SampleCount - initialSampleCount
}
