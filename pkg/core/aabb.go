package core

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates the box spanned by two corner points in any order
func NewAABB(p1, p2 Vec3) AABB {
	return AABB{Min: MinVec(p1, p2), Max: MaxVec(p1, p2)}
}

// Hit tests if a ray intersects with this AABB using the slab method.
//
// The box is rejected when it lies entirely behind the ray origin or when
// the slab intervals do not overlap.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		var lo, hi, origin, direction float64

		switch axis {
		case 0: // X axis
			lo, hi = aabb.Min.X, aabb.Max.X
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1: // Y axis
			lo, hi = aabb.Min.Y, aabb.Max.Y
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2: // Z axis
			lo, hi = aabb.Min.Z, aabb.Max.Z
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		// Zero component: the slab spans (-Inf, +Inf) if the origin is inside
		// it and nothing otherwise. Checked directly to avoid 0*Inf on a plane.
		if direction == 0 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection

		tMin = max(tMin, min(t1, t2))
		tMax = min(tMax, max(t1, t2))
	}

	if tMax < 0 {
		return false
	}
	return tMin <= tMax
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: MinVec(aabb.Min, other.Min),
		Max: MaxVec(aabb.Max, other.Max),
	}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if min <= max for all axes
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
