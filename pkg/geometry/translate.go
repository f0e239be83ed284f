package geometry

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Translate moves a child hittable by a fixed offset. The wrapper owns its
// child exclusively and is itself a hittable, so transforms nest freely.
type Translate struct {
	Child  core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps a hittable with a translation
func NewTranslate(child core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Child: child, Offset: offset}
}

// Hit moves the ray into the child's frame, then moves the hit back out
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	moved := core.Ray{
		Origin:    ray.Origin.Subtract(tr.Offset),
		Direction: ray.Direction,
		Time:      ray.Time,
	}

	hit, isHit := tr.Child.Hit(moved, tMin, tMax, random)
	if !isHit {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the child's box shifted by the offset
func (tr *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, bounded := tr.Child.BoundingBox(time0, time1)
	if !bounded {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(tr.Offset), box.Max.Add(tr.Offset)), true
}
