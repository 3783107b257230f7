package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewRandomScene creates a field of small random spheres around three large
// ones. Diffuse spheres bounce upward during the shutter interval. The layout
// is fixed by seed.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}

	samplingConfig := renderer.SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            seed,
	}

	s := newScene(cameraConfig, samplingConfig, cameraOverrides)
	time0, time1 := s.CameraConfig.Time0, s.CameraConfig.Time1
	sampler := core.NewSeededSampler(seed)

	checker := material.NewCheckerTexture(10, core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9))
	s.Add(newGround(material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			du, dv := sampler.Get2D()
			center := core.NewVec3(float64(a)+0.9*du, 0.2, float64(b)+0.9*dv)

			// Keep the space around the large metal sphere clear
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D()).Color()
				center1 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
				if time1 > time0 {
					s.Add(geometry.NewMovingSphere(center, center1, time0, time1, 0.2, material.NewLambertian(albedo)))
				} else {
					s.Add(geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)))
				}
			case chooseMat < 0.95:
				albedo := core.RandomInCube(sampler, 0.5, 1).Color()
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
