package geometry

import (
	"math"
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Rotate spins a child hittable around one coordinate axis through the
// origin. Rays are rotated into the child's frame for intersection, and
// hit points and normals are rotated back out. The world-space bounding
// box is precomputed from the child's rotated corners.
type Rotate struct {
	Child core.Hittable

	axis               int
	sinTheta, cosTheta float64
	bbox               core.AABB
	bounded            bool
}

// NewRotateX wraps a hittable with a rotation around the X axis
func NewRotateX(child core.Hittable, degrees float64) *Rotate {
	return newRotate(child, 0, degrees)
}

// NewRotateY wraps a hittable with a rotation around the Y axis
func NewRotateY(child core.Hittable, degrees float64) *Rotate {
	return newRotate(child, 1, degrees)
}

// NewRotateZ wraps a hittable with a rotation around the Z axis
func NewRotateZ(child core.Hittable, degrees float64) *Rotate {
	return newRotate(child, 2, degrees)
}

func newRotate(child core.Hittable, axis int, degrees float64) *Rotate {
	radians := degrees * math.Pi / 180.0
	r := &Rotate{
		Child:    child,
		axis:     axis,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Rotate all eight corners of the child's box and bound the result.
	// Times 0..1 cover the full shutter interval for moving children.
	childBox, bounded := child.BoundingBox(0, 1)
	r.bounded = bounded
	if bounded {
		first := true
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 2; k++ {
					corner := core.NewVec3(
						float64(i)*childBox.Max.X+float64(1-i)*childBox.Min.X,
						float64(j)*childBox.Max.Y+float64(1-j)*childBox.Min.Y,
						float64(k)*childBox.Max.Z+float64(1-k)*childBox.Min.Z,
					)
					rotated := rotateAboutAxis(corner, axis, r.sinTheta, r.cosTheta)
					if first {
						r.bbox = core.NewAABB(rotated, rotated)
						first = false
					} else {
						r.bbox = r.bbox.Union(core.NewAABB(rotated, rotated))
					}
				}
			}
		}
	}

	return r
}

// Hit rotates the ray into the child's frame and the result back out
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	// Inverse rotation: same matrix with the angle negated
	rotated := core.Ray{
		Origin:    rotateAboutAxis(ray.Origin, r.axis, -r.sinTheta, r.cosTheta),
		Direction: rotateAboutAxis(ray.Direction, r.axis, -r.sinTheta, r.cosTheta),
		Time:      ray.Time,
	}

	hit, isHit := r.Child.Hit(rotated, tMin, tMax, random)
	if !isHit {
		return nil, false
	}

	hit.Point = rotateAboutAxis(hit.Point, r.axis, r.sinTheta, r.cosTheta)
	hit.Normal = rotateAboutAxis(hit.Normal, r.axis, r.sinTheta, r.cosTheta)

	return hit, true
}

// BoundingBox returns the precomputed world-space box
func (r *Rotate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.bbox, r.bounded
}

// rotateAboutAxis applies a right-handed rotation about a coordinate axis
func rotateAboutAxis(v core.Vec3, axis int, sin, cos float64) core.Vec3 {
	switch axis {
	case 0: // X
		return core.NewVec3(v.X, cos*v.Y-sin*v.Z, sin*v.Y+cos*v.Z)
	case 1: // Y
		return core.NewVec3(cos*v.X+sin*v.Z, v.Y, -sin*v.X+cos*v.Z)
	default: // Z
		return core.NewVec3(cos*v.X-sin*v.Y, sin*v.X+cos*v.Y, v.Z)
	}
}
