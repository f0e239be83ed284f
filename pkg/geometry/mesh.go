package geometry

import (
	"fmt"
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// MeshTriangle is one triangle of an imported model, already transformed
// into the scene's coordinate frame by the mesh loader
type MeshTriangle struct {
	V0, V1, V2    core.Vec3
	UV0, UV1, UV2 [2]float64
}

// Mesh is a triangle set rendered as a single hittable. Intersection
// queries go through the mesh's own BVH over its triangles.
type Mesh struct {
	Material core.Material

	triangles []*Triangle
	bvh       *core.BVHNode
}

// NewMesh builds a mesh from a flat triangle list. Malformed (zero-area)
// triangles are a build error: the scene cannot safely render with them.
func NewMesh(triangles []MeshTriangle, material core.Material) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, fmt.Errorf("mesh: triangle list is empty")
	}

	built := make([]*Triangle, 0, len(triangles))
	hittables := make([]core.Hittable, 0, len(triangles))
	for i, mt := range triangles {
		tri := NewTriangle(mt.V0, mt.V1, mt.V2, material)
		tri.UV0, tri.UV1, tri.UV2 = mt.UV0, mt.UV1, mt.UV2
		if tri.IsDegenerate() {
			return nil, fmt.Errorf("mesh: triangle %d is degenerate (zero area)", i)
		}
		built = append(built, tri)
		hittables = append(hittables, tri)
	}

	// Triangles are static, so the time interval is irrelevant here
	bvh, err := core.NewBVH(hittables, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	return &Mesh{
		Material:  material,
		triangles: built,
		bvh:       bvh,
	}, nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Hit tests the ray against the mesh's triangle BVH
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	return m.bvh.Hit(ray, tMin, tMax, random)
}

// BoundingBox returns the box around all triangles
func (m *Mesh) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.bvh.BoundingBox(time0, time1)
}
