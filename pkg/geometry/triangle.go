package geometry

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices, with
// optional per-vertex UV coordinates for meshes
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	UV0        [2]float64
	UV1        [2]float64
	UV2        [2]float64
	Material   core.Material

	normal core.Vec3 // Cached geometric normal
	bbox   core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices. UVs default to
// the barycentric coordinates of the hit.
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		UV0:      [2]float64{0, 0},
		UV1:      [2]float64{1, 0},
		UV2:      [2]float64{0, 1},
		Material: material,
	}

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	t.normal = edge1.Cross(edge2).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// IsDegenerate reports whether the triangle has (near-)zero area
func (t *Triangle) IsDegenerate() bool {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return edge1.Cross(edge2).LengthSquared() < 1e-24
}

// Hit tests if a ray intersects with the triangle using the Moller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Determinant near zero means the ray lies in the triangle's plane
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	// Interpolate vertex UVs by barycentric weights
	w := 1.0 - u - v
	hitRecord := &core.HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		Material: t.Material,
		U:        w*t.UV0[0] + u*t.UV1[0] + v*t.UV2[0],
		V:        w*t.UV0[1] + u*t.UV1[1] + v*t.UV2[1],
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return t.bbox, true
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
