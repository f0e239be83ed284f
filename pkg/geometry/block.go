package geometry

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Block is an axis-aligned box built from six rectangles, all sharing one
// material and facing outward
type Block struct {
	Min, Max core.Vec3
	sides    *List
}

// NewBlock creates a block spanning the two opposite corners
func NewBlock(min, max core.Vec3, material core.Material) *Block {
	sides := NewList(
		NewXYRect(min.X, max.X, min.Y, max.Y, max.Z, material, true),
		NewXYRect(min.X, max.X, min.Y, max.Y, min.Z, material, false),
		NewXZRect(min.X, max.X, min.Z, max.Z, max.Y, material, true),
		NewXZRect(min.X, max.X, min.Z, max.Z, min.Y, material, false),
		NewYZRect(min.Y, max.Y, min.Z, max.Z, max.X, material, true),
		NewYZRect(min.Y, max.Y, min.Z, max.Z, min.X, material, false),
	)

	return &Block{Min: min, Max: max, sides: sides}
}

// Hit tests the ray against all six sides
func (b *Block) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, random)
}

// BoundingBox returns the exact extents of the block
func (b *Block) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
