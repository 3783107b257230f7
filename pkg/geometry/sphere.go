package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. A negative radius keeps the geometry but
// flips the normals inward, which is how hollow glass bubbles are modelled.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	return hitSphere(ray, s.Center, s.Radius, s.Material, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) core.AABB {
	return sphereBox(s.Center, s.Radius)
}

// hitSphere solves |origin + t*dir - center|² = r² for the nearest root in
// [tMin, tMax]. Shared by static and moving spheres.
func hitSphere(ray core.Ray, center core.Vec3, radius float64, mat material.Material, tMin, tMax float64) material.HitRecord {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic coefficients: a*t² + 2h*t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return material.Miss()
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return material.Miss()
		}
	}

	hit := material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Hit:      true,
		Material: mat,
	}

	outwardNormal := hit.Point.Subtract(center).Divide(radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.U, hit.V = sphereUV(outwardNormal)

	return hit
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis starting at -X, v from the -Y pole to the +Y pole.
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := core.NewVec3(radius, radius, radius)
	return core.NewAABB(center.Subtract(r), center.Add(r))
}
