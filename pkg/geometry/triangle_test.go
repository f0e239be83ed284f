package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/example/raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Right triangle in the z=0 plane
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 0, 0),
		core.NewVec3(0, 2, 0),
		testMaterial(),
	)
	random := testRandom()

	tests := []struct {
		name    string
		ray     core.Ray
		wantHit bool
		wantT   float64
	}{
		{"through interior", core.NewRay(core.NewVec3(0.5, 0.5, 5), core.NewVec3(0, 0, -1)), true, 5},
		{"outside hypotenuse", core.NewRay(core.NewVec3(1.5, 1.5, 5), core.NewVec3(0, 0, -1)), false, 0},
		{"outside edge", core.NewRay(core.NewVec3(-0.5, 0.5, 5), core.NewVec3(0, 0, -1)), false, 0},
		{"parallel to plane", core.NewRay(core.NewVec3(0.5, 0.5, 5), core.NewVec3(1, 0, 0)), false, 0},
		{"behind origin", core.NewRay(core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, -1)), false, 0},
		{"from behind the face", core.NewRay(core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, 1)), true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tri.Hit(tt.ray, 0.001, math.Inf(1), random)
			if isHit != tt.wantHit {
				t.Fatalf("Hit() = %v, expected %v", isHit, tt.wantHit)
			}
			if isHit && math.Abs(hit.T-tt.wantT) > 1e-9 {
				t.Errorf("T = %v, expected %v", hit.T, tt.wantT)
			}
		})
	}
}

func TestTriangle_BarycentricUV(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	tests := []struct {
		name  string
		x, y  float64
		wantU float64
		wantV float64
	}{
		{"near v0", 0.001, 0.001, 0.001, 0.001},
		{"near v1", 0.998, 0.001, 0.998, 0.001},
		{"near v2", 0.001, 0.998, 0.001, 0.998},
		{"centroid", 1.0 / 3, 1.0 / 3, 1.0 / 3, 1.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(tt.x, tt.y, 5), core.NewVec3(0, 0, -1))
			hit, isHit := tri.Hit(ray, 0.001, math.Inf(1), testRandom())
			if !isHit {
				t.Fatal("expected hit")
			}
			if math.Abs(hit.U-tt.wantU) > 1e-6 || math.Abs(hit.V-tt.wantV) > 1e-6 {
				t.Errorf("UV = (%v, %v), expected (%v, %v)", hit.U, hit.V, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestTriangle_IsDegenerate(t *testing.T) {
	collinear := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(2, 2, 2),
		testMaterial(),
	)
	if !collinear.IsDegenerate() {
		t.Error("expected collinear triangle to be degenerate")
	}

	proper := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)
	if proper.IsDegenerate() {
		t.Error("expected proper triangle to not be degenerate")
	}
}

func TestNewMesh_Errors(t *testing.T) {
	tests := []struct {
		name      string
		triangles []MeshTriangle
		wantErr   string
	}{
		{"empty", nil, "empty"},
		{
			"degenerate triangle",
			[]MeshTriangle{
				{V0: core.NewVec3(0, 0, 0), V1: core.NewVec3(1, 0, 0), V2: core.NewVec3(0, 1, 0)},
				{V0: core.NewVec3(0, 0, 0), V1: core.NewVec3(1, 1, 1), V2: core.NewVec3(2, 2, 2)},
			},
			"degenerate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(tt.triangles, testMaterial())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestMesh_Hit(t *testing.T) {
	// Two triangles forming a unit quad in the z=0 plane
	mesh, err := NewMesh([]MeshTriangle{
		{V0: core.NewVec3(0, 0, 0), V1: core.NewVec3(1, 0, 0), V2: core.NewVec3(1, 1, 0)},
		{V0: core.NewVec3(0, 0, 0), V1: core.NewVec3(1, 1, 0), V2: core.NewVec3(0, 1, 0)},
	}, testMaterial())
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}

	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, expected 2", mesh.TriangleCount())
	}

	random := testRandom()

	// Both halves of the quad hit
	for _, point := range []core.Vec3{
		core.NewVec3(0.75, 0.25, 5), // lower-right triangle
		core.NewVec3(0.25, 0.75, 5), // upper-left triangle
	} {
		ray := core.NewRay(point, core.NewVec3(0, 0, -1))
		hit, isHit := mesh.Hit(ray, 0.001, math.Inf(1), random)
		if !isHit {
			t.Fatalf("expected hit through %v", point)
		}
		if math.Abs(hit.T-5) > 1e-9 {
			t.Errorf("T = %v, expected 5", hit.T)
		}
	}

	// Outside the quad misses
	miss := core.NewRay(core.NewVec3(2, 2, 5), core.NewVec3(0, 0, -1))
	if _, isHit := mesh.Hit(miss, 0.001, math.Inf(1), random); isHit {
		t.Error("expected miss outside the quad")
	}

	box, bounded := mesh.BoundingBox(0, 1)
	if !bounded {
		t.Fatal("expected mesh to be bounded")
	}
	if box.Min.X > 0 || box.Max.X < 1 || box.Min.Y > 0 || box.Max.Y < 1 {
		t.Errorf("BoundingBox() = [%v, %v] does not cover the quad", box.Min, box.Max)
	}
}
