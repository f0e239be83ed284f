package core

import "math/rand"

// HitRecord contains information about a ray-object intersection.
// Produced fresh per intersection query, never persisted.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, always against the ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface texture coordinates
	FrontFace bool     // Whether the ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit tests the ray against the object within (tMin, tMax). The random
	// source feeds probabilistic intersections (volumetric media); most
	// implementations ignore it.
	Hit(ray Ray, tMin, tMax float64, random *rand.Rand) (*HitRecord, bool)

	// BoundingBox returns a box enclosing the object over the time interval.
	// The second return is false for unbounded objects (infinite planes).
	BoundingBox(time0, time1 float64) (AABB, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The outgoing ray
	Attenuation Vec3 // Color attenuation applied to light along the scattered ray
}

// Material decides how a surface responds to an incoming ray.
// Implementations are stateless and shared across all threads.
type Material interface {
	// Scatter produces an outgoing ray and attenuation for a hit, or false
	// if the ray is absorbed
	Scatter(rayIn Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool)
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	// Emitted returns light emitted at the given surface coordinates.
	// Components above 1 represent un-normalized light intensity.
	Emitted(u, v float64, point Vec3) Vec3
}

// Texture provides spatially-varying color lookup
type Texture interface {
	// Value returns the color at UV coordinates and 3D point.
	// UV serves image textures, the point serves procedural ones.
	Value(u, v float64, point Vec3) Vec3
}

// Background supplies radiance for rays that miss every object
type Background interface {
	Color(ray Ray) Vec3
}

// Logger interface for render progress and diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}
