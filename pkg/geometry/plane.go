package geometry

import (
	"math"
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Plane is an infinite plane through a point, UV-mapped by tiling an
// in-plane orthonormal basis every UVRepeat world units. It has no bounding
// box, so it lives in a List beside the BVH rather than inside it.
type Plane struct {
	Point    core.Vec3
	UVRepeat float64
	Material core.Material

	u, v, normal core.Vec3
}

// NewPlane creates a plane through a, with b and c fixing its orientation:
// the U axis runs from a toward b, and c picks the side the normal faces.
func NewPlane(a, b, c core.Vec3, uvRepeat float64, material core.Material) *Plane {
	u := b.Subtract(a).Normalize()
	normal := u.Cross(c.Subtract(a)).Normalize()
	v := normal.Cross(u)

	return &Plane{
		Point:    a,
		UVRepeat: uvRepeat,
		Material: material,
		u:        u,
		v:        v,
		normal:   normal,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.normal)
	if math.Abs(denominator) < 1e-12 {
		return nil, false // Ray parallel to the plane
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)

	// Planar coordinates in the orthonormal basis, wrapped into [0,1) tiles
	inPlane := hitPoint.Subtract(p.Point)
	u := wrapUV(inPlane.Dot(p.u), p.UVRepeat)
	v := wrapUV(-inPlane.Dot(p.v), p.UVRepeat)

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    hitPoint,
		Material: p.Material,
		U:        u,
		V:        v,
	}
	hitRecord.SetFaceNormal(ray, p.normal)

	return hitRecord, true
}

// BoundingBox reports the plane as unbounded
func (p *Plane) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func wrapUV(coord, repeat float64) float64 {
	frac := math.Mod(coord, repeat) / repeat
	if frac < 0 {
		frac += 1.0
	}
	return frac
}
