package core

import "math/rand"

// Sampler provides random sampling for rendering algorithms.
// Each render worker owns its own Sampler; implementations are not safe for
// concurrent use.
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInRange returns a uniform float64 in [lo, hi)
func RandomInRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// RandomInCube returns a vector with each component uniform in [lo, hi)
func RandomInCube(sampler Sampler, lo, hi float64) Vec3 {
	u := sampler.Get3D()
	return NewVec3(
		lo+(hi-lo)*u.X,
		lo+(hi-lo)*u.Y,
		lo+(hi-lo)*u.Z,
	)
}

// RandomInUnitSphere returns a uniform point inside the unit sphere by
// rejection from the [-1,1]³ cube. Each draw is accepted with probability
// π/6, so the loop runs 6/π ≈ 1.91 times on average and terminates with
// probability 1.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomInCube(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomInUnitDisk returns a uniform point inside the unit disk in the z=0
// plane. Acceptance probability is π/4 per draw.
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		u, v := sampler.Get2D()
		p := NewVec3(2*u-1, 2*v-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
