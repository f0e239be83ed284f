package geometry

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Rect is an axis-aligned rectangle lying in the plane axisK = K, spanning
// [U0,U1] x [V0,V1] on the other two axes. FacingPositive selects which
// side of the plane the declared normal points toward.
type Rect struct {
	U0, U1, V0, V1 float64
	K              float64
	Material       core.Material
	FacingPositive bool

	axisU, axisV, axisK int
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material, facingPositive bool) *Rect {
	return &Rect{
		U0: x0, U1: x1, V0: y0, V1: y1, K: k,
		Material: material, FacingPositive: facingPositive,
		axisU: 0, axisV: 1, axisK: 2,
	}
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material, facingPositive bool) *Rect {
	return &Rect{
		U0: x0, U1: x1, V0: z0, V1: z1, K: k,
		Material: material, FacingPositive: facingPositive,
		axisU: 0, axisV: 2, axisK: 1,
	}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material, facingPositive bool) *Rect {
	return &Rect{
		U0: y0, U1: y1, V0: z0, V1: z1, K: k,
		Material: material, FacingPositive: facingPositive,
		axisU: 1, axisV: 2, axisK: 0,
	}
}

// Hit tests if a ray intersects with the rectangle
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	direction := ray.Direction.Axis(r.axisK)
	if direction == 0 {
		return nil, false // Ray parallel to the plane
	}

	t := (r.K - ray.Origin.Axis(r.axisK)) / direction
	if t < tMin || t > tMax {
		return nil, false
	}

	u := ray.Origin.Axis(r.axisU) + t*ray.Direction.Axis(r.axisU)
	v := ray.Origin.Axis(r.axisV) + t*ray.Direction.Axis(r.axisV)
	if u < r.U0 || u > r.U1 || v < r.V0 || v > r.V1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: r.Material,
		U:        (u - r.U0) / (r.U1 - r.U0),
		V:        (v - r.V0) / (r.V1 - r.V0),
	}
	hitRecord.SetFaceNormal(ray, r.outwardNormal())

	return hitRecord, true
}

// BoundingBox returns a box with a small thickness along the flat axis so
// it never degenerates to zero extent
func (r *Rect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	const pad = 0.0001

	var minP, maxP [3]float64
	minP[r.axisU], maxP[r.axisU] = r.U0, r.U1
	minP[r.axisV], maxP[r.axisV] = r.V0, r.V1
	minP[r.axisK], maxP[r.axisK] = r.K-pad, r.K+pad

	return core.NewAABB(
		core.NewVec3(minP[0], minP[1], minP[2]),
		core.NewVec3(maxP[0], maxP[1], maxP[2]),
	), true
}

func (r *Rect) outwardNormal() core.Vec3 {
	sign := 1.0
	if !r.FacingPositive {
		sign = -1.0
	}
	var n [3]float64
	n[r.axisK] = sign
	return core.NewVec3(n[0], n[1], n[2])
}
