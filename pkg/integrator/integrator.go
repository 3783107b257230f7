package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along a camera ray.
	// world must not be mutated during the call; sampler is owned by the caller.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Color
}

// Background is the sky seen by rays that escape the scene, blended
// vertically from Bottom (looking straight down) to Top (straight up)
type Background struct {
	Top    core.Color
	Bottom core.Color
}

// DefaultBackground returns the white to sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewColor(0.5, 0.7, 1.0),
		Bottom: core.White,
	}
}

// Color returns the gradient value for a ray direction
func (b Background) Color(direction core.Vec3) core.Color {
	unitDirection := direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return b.Bottom.Vec().Multiply(1.0 - t).Add(b.Top.Vec().Multiply(t)).Color()
}
