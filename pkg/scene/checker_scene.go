package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewCheckerScene creates two large checkered spheres touching at the origin
func NewCheckerScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom: core.NewVec3(13, 2, 3),
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

	checker := material.NewTexturedLambertian(
		material.NewCheckerTexture(10, core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9)),
	)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	return s
}
