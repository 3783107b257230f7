package scene

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var _ renderer.Scene = (*Scene)(nil)

func TestCreate_BuiltinScenes(t *testing.T) {
	tests := []struct {
		name          string
		minPrimitives int
	}{
		{"default", 5},
		{"random", 4},
		{"checker", 2},
		{"glass", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tt.name, err)
			}
			if err := s.SamplingConfig.Validate(); err != nil {
				t.Errorf("Scene sampling config invalid: %v", err)
			}
			if got := s.GetPrimitiveCount(); got < tt.minPrimitives {
				t.Errorf("Expected at least %d primitives, got %d", tt.minPrimitives, got)
			}
			if s.Camera == nil {
				t.Fatal("Scene has no camera")
			}
			aspect := float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
			if s.CameraConfig.AspectRatio != aspect {
				t.Errorf("Camera aspect %f should match image aspect %f", s.CameraConfig.AspectRatio, aspect)
			}
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	if _, err := Create("no-such-scene"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestCreate_CameraOverride(t *testing.T) {
	s, err := Create("checker", renderer.CameraConfig{VFov: 60})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.CameraConfig.VFov != 60 {
		t.Errorf("Expected overridden fov 60, got %f", s.CameraConfig.VFov)
	}
	if !s.CameraConfig.LookFrom.Equals(core.NewVec3(13, 2, 3)) {
		t.Errorf("Non-overridden fields should keep scene defaults, got %v", s.CameraConfig.LookFrom)
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != len(builtinScenes) {
		t.Fatalf("Expected %d scenes, got %d", len(builtinScenes), len(scenes))
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i-1].ID >= scenes[i].ID {
			t.Errorf("Scenes not sorted: %q before %q", scenes[i-1].ID, scenes[i].ID)
		}
	}
	for _, info := range scenes {
		if info.DisplayName == "" || info.Description == "" {
			t.Errorf("Scene %q missing metadata", info.ID)
		}
	}
}

func TestRandomScene_DeterministicWithMotion(t *testing.T) {
	a := NewRandomScene(7)
	b := NewRandomScene(7)
	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Errorf("Same seed should give the same layout: %d vs %d", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}

	moving := 0
	for _, shape := range a.World.Shapes() {
		if _, ok := shape.(*geometry.MovingSphere); ok {
			moving++
		}
	}
	if moving == 0 {
		t.Error("Random scene should contain moving spheres")
	}

	// Without a shutter interval every sphere is static
	static := NewRandomScene(7, renderer.CameraConfig{Time0: 0.5, Time1: 0.5})
	for _, shape := range static.World.Shapes() {
		if _, ok := shape.(*geometry.MovingSphere); ok {
			t.Fatal("Zero-length shutter should not create moving spheres")
		}
	}
}

func TestScene_Configure(t *testing.T) {
	s := NewDefaultScene()

	if err := s.Configure(renderer.SamplingConfig{Width: 100, Height: 100, SamplesPerPixel: 3}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	if s.SamplingConfig.Width != 100 || s.SamplingConfig.SamplesPerPixel != 3 {
		t.Errorf("Override not applied: %+v", s.SamplingConfig)
	}
	if s.SamplingConfig.MaxDepth != 50 {
		t.Errorf("Zero override should keep depth, got %d", s.SamplingConfig.MaxDepth)
	}
	if s.Camera.Config().AspectRatio != 1 {
		t.Errorf("Camera should be rebuilt with aspect 1, got %f", s.Camera.Config().AspectRatio)
	}

	if err := s.Configure(renderer.SamplingConfig{MaxDepth: -1}); err == nil {
		t.Error("Expected error for negative depth")
	}
}

func TestEarthScene(t *testing.T) {
	if _, err := NewEarthScene(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing texture")
	}

	path := filepath.Join(t.TempDir(), "earth.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 0, B: 255, A: 255})
		}
	}
	if err := loaders.SavePNG(path, img); err != nil {
		t.Fatalf("Failed to write texture: %v", err)
	}

	s, err := NewEarthScene(path)
	if err != nil {
		t.Fatalf("NewEarthScene failed: %v", err)
	}
	if s.GetPrimitiveCount() != 1 {
		t.Errorf("Expected a single globe, got %d primitives", s.GetPrimitiveCount())
	}
}

func TestDefaultScene_Renders(t *testing.T) {
	s := NewDefaultScene()
	if err := s.Configure(renderer.SamplingConfig{Width: 16, Height: 9, SamplesPerPixel: 2, MaxDepth: 5}); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}

	img, stats := renderer.NewRaytracer(s).RenderPass()
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Unexpected image size %v", img.Bounds())
	}
	if stats.TotalSamples != 16*9*2 {
		t.Errorf("Expected %d samples, got %d", 16*9*2, stats.TotalSamples)
	}
}
