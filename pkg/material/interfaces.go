package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations are immutable after construction and may be shared by any
// number of shapes; all randomness comes from the supplied sampler.
type Material interface {
	// Scatter returns the continuation ray and its attenuation, or false when
	// the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing against the ray
	T         float64   // Parameter t along the ray
	Hit       bool      // Whether an intersection occurred
	FrontFace bool      // Whether ray hit the front face
	U, V      float64   // Surface parametrization
	Material  Material  // Material of the hit object
}

// Miss returns the sentinel record for "no intersection". Its T is +Inf so the
// nearest-hit comparison t < current.T needs no special case.
func Miss() HitRecord {
	return HitRecord{T: math.Inf(1), Material: absorber}
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
