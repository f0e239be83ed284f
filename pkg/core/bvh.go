package core

import (
	"fmt"
	"math/rand"
	"sort"
)

// BVHNode is a node in the bounding volume hierarchy. A node is either a
// leaf wrapping a single hittable or an internal node with exactly two
// children whose box is the union of the children's boxes. The tree is
// built once and is immutable afterwards, so it is safely shared across
// render workers without locking.
type BVHNode struct {
	left  Hittable
	right Hittable
	box   AABB
}

// NewBVH builds a BVH over the given hittables for the time interval
// [time0, time1]. Every hittable must be bounded: unbounded objects like
// infinite planes belong in a linear list beside the tree. An empty list
// or a degenerate bounding box is a build error.
func NewBVH(hittables []Hittable, time0, time1 float64) (*BVHNode, error) {
	if len(hittables) == 0 {
		return nil, fmt.Errorf("bvh: cannot build over an empty hittable list")
	}

	// Copy so sorting during construction never mutates the caller's slice
	objects := make([]Hittable, len(hittables))
	copy(objects, hittables)

	for _, h := range objects {
		box, bounded := h.BoundingBox(time0, time1)
		if !bounded {
			return nil, fmt.Errorf("bvh: unbounded hittable %T cannot be placed in a BVH", h)
		}
		if !box.IsValid() {
			return nil, fmt.Errorf("bvh: hittable %T has a degenerate bounding box %+v", h, box)
		}
	}

	return buildBVH(objects, time0, time1), nil
}

// buildBVH recursively splits the list at the median of the largest-extent
// axis, keeping tree depth near log2(n). Boundedness was checked up front.
func buildBVH(objects []Hittable, time0, time1 float64) *BVHNode {
	node := &BVHNode{}

	switch len(objects) {
	case 1:
		node.left = objects[0]
		node.right = objects[0]
	case 2:
		node.left = objects[0]
		node.right = objects[1]
	default:
		combined, _ := objects[0].BoundingBox(time0, time1)
		for _, h := range objects[1:] {
			box, _ := h.BoundingBox(time0, time1)
			combined = combined.Union(box)
		}
		axis := combined.LongestAxis()

		sort.Slice(objects, func(i, j int) bool {
			boxI, _ := objects[i].BoundingBox(time0, time1)
			boxJ, _ := objects[j].BoundingBox(time0, time1)
			return boxI.Min.Axis(axis) < boxJ.Min.Axis(axis)
		})

		mid := len(objects) / 2
		node.left = buildBVH(objects[:mid], time0, time1)
		node.right = buildBVH(objects[mid:], time0, time1)
	}

	leftBox, _ := node.left.BoundingBox(time0, time1)
	rightBox, _ := node.right.BoundingBox(time0, time1)
	node.box = leftBox.Union(rightBox)

	return node
}

// Hit returns the nearest intersection within (tMin, tMax), descending into
// a child only if the ray intersects that child's box within the interval
// narrowed by the closest hit found so far.
func (n *BVHNode) Hit(ray Ray, tMin, tMax float64, random *rand.Rand) (*HitRecord, bool) {
	if !n.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.left.Hit(ray, tMin, tMax, random)
	closest := tMax
	if hitLeft {
		closest = leftHit.T
	}

	// Avoid probing the same leaf twice for single-object nodes
	if n.right == n.left {
		return leftHit, hitLeft
	}

	rightHit, hitRight := n.right.Hit(ray, tMin, closest, random)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the precomputed union of the children's boxes
func (n *BVHNode) BoundingBox(time0, time1 float64) (AABB, bool) {
	return n.box, true
}

// Depth returns the height of the tree, for diagnostics
func (n *BVHNode) Depth() int {
	depth := 1
	if left, ok := n.left.(*BVHNode); ok {
		depth = max(depth, 1+left.Depth())
	}
	if right, ok := n.right.(*BVHNode); ok && n.right != n.left {
		depth = max(depth, 1+right.Depth())
	}
	return depth
}
