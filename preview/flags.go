package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/scene"
)

type flags struct {
	scene   string
	width   int
	samples int
	passes  int
	workers int
	scale   int
}

func NewFlags() (*flags, error) {
	sceneName := flag.String("scene", "random", "Scene to render: "+strings.Join(scene.SceneNames(), ", "))
	width := flag.Int("width", 0, "Render width in pixels (0 = scene default, height keeps the scene aspect ratio)")
	samples := flag.Int("samples", 0, "Samples per pixel after the last pass (0 = scene default)")
	passes := flag.Int("passes", 10, "Number of progressive passes")
	workers := flag.Int("workers", 0, "Parallel workers (0 = CPU count)")
	scale := flag.Int("scale", 2, "Window pixels per rendered pixel")

	flag.Parse()

	if *width < 0 {
		return nil, fmt.Errorf("error: Render width must not be negative")
	}
	if *samples < 0 {
		return nil, fmt.Errorf("error: Samples must not be negative")
	}
	if *passes <= 0 {
		return nil, fmt.Errorf("error: Passes must be greater than 0")
	}
	if *scale <= 0 {
		return nil, fmt.Errorf("error: Scale must be greater than 0")
	}

	return &flags{
		scene:   *sceneName,
		width:   *width,
		samples: *samples,
		passes:  *passes,
		workers: *workers,
		scale:   *scale,
	}, nil
}
