package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// DefaultEarthTexture is the texture NewEarthScene loads when Create is
// asked for "earth"
const DefaultEarthTexture = "assets/earthmap.jpg"

// NewEarthScene creates a single globe wrapped in the image at texturePath
func NewEarthScene(texturePath string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	imageData, err := loaders.LoadImage(texturePath)
	if err != nil {
		return nil, fmt.Errorf("earth texture: %w", err)
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 12),
		LookAt:   core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     20.0,
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 50,
		MaxDepth:        50,
		Seed:            42,
	}

	s := newScene(cameraConfig, samplingConfig, cameraOverrides)

	texture := material.NewImageTexture(imageData.Width, imageData.Height, imageData.Pixels)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture)))

	return s, nil
}
