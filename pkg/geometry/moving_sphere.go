package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MovingSphere is a sphere whose center travels linearly from Center0 at
// Time0 to Center1 at Time1. Rays outside that interval extrapolate along the
// same line.
type MovingSphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         material.Material
}

// NewMovingSphere creates a moving sphere. It panics if time1 <= time0, since
// the center trajectory is undefined for an empty interval.
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, material material.Material) *MovingSphere {
	if time1 <= time0 {
		panic(fmt.Sprintf("geometry: moving sphere needs time1 > time0, got [%g, %g]", time0, time1))
	}
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// Center returns the interpolated center at the given time
func (s *MovingSphere) Center(time float64) core.Vec3 {
	fraction := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(fraction))
}

// Hit tests the ray against the sphere at the ray's time
func (s *MovingSphere) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	return hitSphere(ray, s.Center(ray.Time), s.Radius, s.Material, tMin, tMax)
}

// BoundingBox returns the union of the boxes at the two keyframes. This is
// conservative rather than a tight swept volume, and ignores the query interval.
func (s *MovingSphere) BoundingBox(time0, time1 float64) core.AABB {
	return sphereBox(s.Center0, s.Radius).Union(sphereBox(s.Center1, s.Radius))
}
