package renderer

import (
	"context"
	"errors"
	"image"
	"testing"
)

func TestProgressiveSampleCalculation(t *testing.T) {
	config := DefaultProgressiveConfig()
	config.InitialSamples = 1
	config.MaxSamplesPerPixel = 50
	config.MaxPasses = 7

	pr := &ProgressiveRaytracer{
		config: config,
	}

	// Pass 1 is the preview, passes 2-6 add (50-1)/6 = 8 each, pass 7 tops up
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}

	for pass := 1; pass <= 7; pass++ {
		totalSamples := pr.getSamplesForPass(pass)
		if totalSamples != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d",
				pass, expectedTotalSamples[pass-1], totalSamples)
		}
	}

	pr.config.MaxPasses = 1
	if got := pr.getSamplesForPass(1); got != 50 {
		t.Errorf("Single pass should take every sample, got %d", got)
	}
}

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}
	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}
	if config.MaxPasses != 7 {
		t.Errorf("Expected default max passes 7, got %d", config.MaxPasses)
	}
}

func TestNewProgressiveRaytracer_Errors(t *testing.T) {
	scene := newTestScene(8, 8, 4)
	scene.config.Width = 0
	if _, err := NewProgressiveRaytracer(scene, DefaultProgressiveConfig(), nil); err == nil {
		t.Error("Expected error for zero width")
	}

	scene = newTestScene(8, 8, 4)
	config := DefaultProgressiveConfig()
	config.TileSize = 0
	if _, err := NewProgressiveRaytracer(scene, config, nil); err == nil {
		t.Error("Expected error for zero tile size")
	}
}

func TestNewTileGrid(t *testing.T) {
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize, 42)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Fatalf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Tiles cover the image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Tile %d has ID %d", i, tile.ID)
		}
		if !tile.Bounds.In(image.Rect(0, 0, width, height)) {
			t.Errorf("Tile %d bounds %v exceed image", i, tile.Bounds)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if covered[y][x] {
					t.Fatalf("Pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			if !covered[y][x] {
				t.Fatalf("Pixel (%d,%d) not covered by any tile", x, y)
			}
		}
	}
}

func TestTileDeterministicRandom(t *testing.T) {
	a := NewTileGrid(128, 128, 64, 7)
	b := NewTileGrid(128, 128, 64, 7)

	for i := range a {
		if a[i].Sampler.Get1D() != b[i].Sampler.Get1D() {
			t.Errorf("Tile %d should have the same random stream for the same seed", i)
		}
	}

	// Different tiles get different streams
	if a[0].Sampler.Get1D() == a[1].Sampler.Get1D() {
		t.Error("Adjacent tiles should not share a random stream")
	}
}

// renderAll runs every pass and returns the last result
func renderAll(t *testing.T, pr *ProgressiveRaytracer) PassResult {
	t.Helper()
	passChan, _, errChan := pr.RenderProgressive(context.Background(), RenderOptions{})

	var last PassResult
	passes := 0
	for result := range passChan {
		if result.PassNumber != passes+1 {
			t.Fatalf("Expected pass %d, got %d", passes+1, result.PassNumber)
		}
		passes++
		last = result
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}
	if !last.IsLast {
		t.Fatal("Final pass should be flagged as last")
	}
	return last
}

func TestProgressiveRaytracer_ReachesTargetSamples(t *testing.T) {
	scene := newTestScene(20, 10, 6)
	config := ProgressiveConfig{TileSize: 8, InitialSamples: 1, MaxPasses: 3, NumWorkers: 2}

	pr, err := NewProgressiveRaytracer(scene, config, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	last := renderAll(t, pr)
	if last.PassNumber != 3 {
		t.Errorf("Expected 3 passes, got %d", last.PassNumber)
	}
	if last.Stats.MinSamples != 6 || last.Stats.MaxSamplesUsed != 6 {
		t.Errorf("Every pixel should end with 6 samples: %+v", last.Stats)
	}
	if last.Image.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Errorf("Unexpected image bounds %v", last.Image.Bounds())
	}
}

func TestProgressiveRaytracer_IndependentOfWorkerCount(t *testing.T) {
	render := func(workers int) *image.RGBA {
		scene := newTestScene(24, 16, 4)
		config := ProgressiveConfig{TileSize: 8, InitialSamples: 1, MaxPasses: 2, NumWorkers: workers}
		pr, err := NewProgressiveRaytracer(scene, config, nil)
		if err != nil {
			t.Fatalf("Failed to create raytracer: %v", err)
		}
		return renderAll(t, pr).Image
	}

	single := render(1)
	parallel := render(4)
	for i := range single.Pix {
		if single.Pix[i] != parallel.Pix[i] {
			t.Fatalf("Worker count changed the image at byte %d", i)
		}
	}
}

func TestProgressiveRaytracer_TileUpdates(t *testing.T) {
	scene := newTestScene(16, 16, 2)
	config := ProgressiveConfig{TileSize: 8, InitialSamples: 1, MaxPasses: 2, NumWorkers: 2}
	pr, err := NewProgressiveRaytracer(scene, config, nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	done := make(chan int)
	go func() {
		count := 0
		for tile := range tileChan {
			if tile.TileImage.Bounds().Dx() != 8 || tile.TotalTiles != 4 {
				t.Errorf("Unexpected tile event %+v", tile)
			}
			count++
		}
		done <- count
	}()

	for range passChan {
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}
	if count := <-done; count == 0 {
		t.Error("Expected at least one tile event")
	}
}

func TestProgressiveRaytracer_Cancelled(t *testing.T) {
	scene := newTestScene(16, 16, 4)
	pr, err := NewProgressiveRaytracer(scene, DefaultProgressiveConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create raytracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})
	for range passChan {
		t.Error("No pass should complete after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
