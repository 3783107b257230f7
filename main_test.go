package main

import (
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"defaults", nil, false},
		{"all options", []string{"-scene", "glass", "-width", "64", "-samples", "4", "-depth", "8", "-serial"}, false},
		{"negative width", []string{"-width", "-1"}, true},
		{"zero passes", []string{"-passes", "0"}, true},
		{"zero tile", []string{"-tile", "0"}, true},
		{"unknown flag", []string{"-bogus"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			if (err != nil) != tt.expectError {
				t.Errorf("parseFlags(%v) error = %v, expectError %v", tt.args, err, tt.expectError)
			}
		})
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"random scene", "random", false},
		{"checker scene", "checker", false},
		{"glass scene", "glass", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(Config{SceneType: tt.sceneType})
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
		})
	}
}

func TestCreateScene_WidthKeepsAspect(t *testing.T) {
	s, err := createScene(Config{SceneType: "default", Width: 200})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	// Default scene is 400x225
	if s.SamplingConfig.Width != 200 || s.SamplingConfig.Height != 112 {
		t.Errorf("Expected 200x112, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
}

func TestRun_WritesImage(t *testing.T) {
	for _, serial := range []bool{true, false} {
		out := filepath.Join(t.TempDir(), "render.png")
		config := Config{
			SceneType: "checker",
			Width:     16,
			Height:    8,
			Samples:   2,
			MaxDepth:  4,
			Passes:    2,
			TileSize:  8,
			Workers:   2,
			Serial:    serial,
			Output:    out,
		}

		if err := run(config, core.NopLogger{}); err != nil {
			t.Fatalf("run(serial=%v) failed: %v", serial, err)
		}

		img, err := loaders.LoadImage(out)
		if err != nil {
			t.Fatalf("Failed to read rendered image: %v", err)
		}
		if img.Width != 16 || img.Height != 8 {
			t.Errorf("Expected 16x8 output, got %dx%d", img.Width, img.Height)
		}
	}
}
