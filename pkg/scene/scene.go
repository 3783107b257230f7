package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.Group // Every object in the scene
	Background     integrator.Background
	SamplingConfig renderer.SamplingConfig
}

// newScene assembles a scene, fitting the camera's aspect ratio to the image
func newScene(cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	cameraConfig.AspectRatio = float64(samplingConfig.Width) / float64(samplingConfig.Height)

	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewGroup(cameraConfig.Time0, cameraConfig.Time1),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// Configure applies the non-zero fields of override to the sampling config
// and rebuilds the camera when the image shape changes
func (s *Scene) Configure(override renderer.SamplingConfig) error {
	config := renderer.MergeSamplingConfig(s.SamplingConfig, override)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid sampling config: %w", err)
	}

	s.SamplingConfig = config
	s.CameraConfig.AspectRatio = float64(config.Width) / float64(config.Height)
	s.Camera = renderer.NewCamera(s.CameraConfig)
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetWorld returns the root of the scene graph
func (s *Scene) GetWorld() geometry.Shape { return s.World }

// GetBackground returns the sky gradient
func (s *Scene) GetBackground() integrator.Background { return s.Background }

// GetSamplingConfig returns the rendering configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig { return s.SamplingConfig }

// GetPrimitiveCount returns the number of leaf shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

func countPrimitives(shape geometry.Shape) int {
	group, ok := shape.(*geometry.Group)
	if !ok {
		return 1
	}
	count := 0
	for _, child := range group.Shapes() {
		count += countPrimitives(child)
	}
	return count
}

// newGround returns the huge sphere used as a floor by the built-in scenes
func newGround(mat material.Material) *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, mat)
}
