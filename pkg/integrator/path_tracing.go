package integrator

import (
	"math"
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// tMin avoids shadow acne from rays re-hitting the surface they just left.
const tMin = 0.001

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxBounces int // Maximum recursion depth before a path is cut off
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxBounces int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxBounces: maxBounces}
}

// RayColor computes the color for a single ray using unidirectional path tracing.
// Rays that miss the scene entirely return the background color without recursing.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, background core.Background, random *rand.Rand, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, tMin, math.Inf(1), random)
	if !isHit {
		return background.Color(ray)
	}

	// Start with emitted light from the hit material
	colorEmitted := pt.getEmittedLight(hit)

	// Try to scatter the ray
	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incomingLight := pt.RayColor(scatter.Scattered, world, background, random, depth-1)
	colorScattered := scatter.Attenuation.MultiplyVec(incomingLight)

	return sanitize(colorEmitted.Add(colorScattered))
}

// getEmittedLight returns the emitted light from a material if it's emissive
func (pt *PathTracingIntegrator) getEmittedLight(hit *core.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		return emitter.Emitted(hit.U, hit.V, hit.Point)
	}
	return core.Vec3{}
}

// sanitize replaces non-finite components with zero and clamps negatives,
// so a single degenerate sample can't poison a pixel's accumulated sum
func sanitize(c core.Vec3) core.Vec3 {
	return core.NewVec3(sanitizeComponent(c.X), sanitizeComponent(c.Y), sanitizeComponent(c.Z))
}

func sanitizeComponent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
