package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance for every ray, keeping
// secondary rays from re-hitting the surface they leave
const ShadowAcneEpsilon = 1e-4

// Config configures the path tracing integrator
type Config struct {
	MaxDepth   int // Number of bounces allowed after the camera ray's first hit
	Background Background
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   50,
		Background: DefaultBackground(),
	}
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor traces the ray with the configured depth budget
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Color {
	return pt.Trace(ray, world, sampler, pt.config.MaxDepth)
}

// Trace follows a path from ray until it escapes, is absorbed, or the depth
// budget goes negative. Each bounce multiplies the running throughput by the
// material attenuation; an escaped ray returns throughput times the sky.
// This is the loop form of RayColorRecursive; for the same sampler stream
// both agree up to floating-point rounding.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Color {
	throughput := core.White

	for ; depth >= 0; depth-- {
		hit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !hit.Hit {
			return throughput.MultiplyColor(pt.config.Background.Color(ray.Direction))
		}

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			return core.Black
		}

		throughput = throughput.MultiplyColor(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted
	return core.Black
}

// RayColorRecursive is the direct recursive form of Trace. Termination relies
// only on the depth budget; there is no cycle detection.
func (pt *PathTracingIntegrator) RayColorRecursive(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Color {
	if depth < 0 {
		return core.Black
	}

	hit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !hit.Hit {
		return pt.config.Background.Color(ray.Direction)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Black
	}

	return scatter.Attenuation.MultiplyColor(pt.RayColorRecursive(scatter.Scattered, world, sampler, depth-1))
}
