package material

import "github.com/df07/go-pathtracer/pkg/core"

// absorber backs the miss sentinel
var absorber = &Nothing{}

// Nothing absorbs every ray. It only appears in miss records and is never
// attached to real geometry.
type Nothing struct{}

// Scatter always reports absorption
func (n *Nothing) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{Attenuation: core.Black}, false
}
