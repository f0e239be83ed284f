package geometry

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// List is a hittable collection probed by linear scan. It is the container
// of last resort for unbounded objects (infinite planes) that cannot live
// inside a BVH, and the top-level world when a BVH sits beside them.
type List struct {
	Objects []core.Hittable
}

// NewList creates a list from the given hittables
func NewList(objects ...core.Hittable) *List {
	return &List{Objects: objects}
}

// Add appends a hittable to the list
func (l *List) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the nearest intersection over all objects in the list
func (l *List) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar, random); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all member boxes, or false if the list
// is empty or contains an unbounded object
func (l *List) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	box, bounded := l.Objects[0].BoundingBox(time0, time1)
	if !bounded {
		return core.AABB{}, false
	}
	for _, object := range l.Objects[1:] {
		next, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		box = box.Union(next)
	}

	return box, true
}
