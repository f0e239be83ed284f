package geometry

import (
	"math"
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// ConstantMedium wraps a boundary hittable as a volume of constant density.
// A ray traversing the boundary scatters at an exponentially distributed
// distance; if the draw exceeds the in-boundary traversal, the ray passes
// through as if the volume were absent. The phase function is the material
// reported on synthetic hits, typically Isotropic.
type ConstantMedium struct {
	Boundary      core.Hittable
	PhaseFunction core.Material

	negInvDensity float64
}

// NewConstantMedium wraps a boundary with the given density and phase function
func NewConstantMedium(boundary core.Hittable, density float64, phaseFunction core.Material) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: phaseFunction,
		negInvDensity: -1.0 / density,
	}
}

// Hit reports a synthetic scattering hit inside the boundary, or no hit if
// the ray misses, grazes, or traverses without scattering
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	// Probe for the entry and exit of the boundary along the full ray, so
	// rays starting inside the volume still find their exit
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), random)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+0.0001, math.Inf(1), random)
	if !ok {
		return nil, false
	}

	tEnter := math.Max(entry.T, tMin)
	tExit := math.Min(exit.T, tMax)
	if tEnter >= tExit {
		return nil, false
	}
	if tEnter < 0 {
		tEnter = 0
	}

	// Density 0 gives an infinite scatter distance and never scatters
	rayLength := ray.Direction.Length()
	distanceInside := (tExit - tEnter) * rayLength
	scatterDistance := m.negInvDensity * math.Log(random.Float64())
	if scatterDistance > distanceInside {
		return nil, false
	}

	t := tEnter + scatterDistance/rayLength
	return &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: m.PhaseFunction,
		// Normal and face are arbitrary for a volume interior; UV has no meaning
		Normal:    core.NewVec3(1, 0, 0),
		FrontFace: true,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
