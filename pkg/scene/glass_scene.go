package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewGlassScene creates a row of dielectric spheres with increasing
// refractive index in front of a fuzzy mirror
func NewGlassScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 1.2, 5),
		LookAt:   core.NewVec3(0, 0.5, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     35.0,
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 200,
		MaxDepth:        50, // Glass needs many bounces
		Seed:            42,
	}

	s := newScene(cameraConfig, samplingConfig, cameraOverrides)

	floor := material.NewTexturedLambertian(
		material.NewCheckerTexture(4, core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.9, 0.9, 0.9)),
	)
	s.Add(newGround(floor))

	// Water, glass, and diamond
	indices := []float64{1.33, 1.5, 2.4}
	for i, ir := range indices {
		x := float64(i-1) * 1.2
		s.Add(geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, material.NewDielectric(ir)))
	}

	// Thin-walled bubble in front
	bubble := material.NewDielectric(1.5)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.25, 1.5), 0.25, bubble),
		geometry.NewSphere(core.NewVec3(0, 0.25, 1.5), -0.23, bubble),
	)

	s.Add(geometry.NewSphere(core.NewVec3(0, 1.5, -3), 1.5, material.NewMetal(core.NewColor(0.8, 0.85, 0.9), 0.2)))

	return s
}
