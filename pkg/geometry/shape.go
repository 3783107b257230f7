package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Shapes are read-only once a render starts and may be queried concurrently.
type Shape interface {
	// Hit returns the nearest intersection with t in [tMin, tMax], or
	// material.Miss() when there is none
	Hit(ray core.Ray, tMin, tMax float64) material.HitRecord

	// BoundingBox returns a box enclosing the shape over the time interval [time0, time1]
	BoundingBox(time0, time1 float64) core.AABB
}
