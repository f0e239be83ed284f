package core_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/geometry"
	"github.com/example/raytracer/pkg/material"
)

// unboundedObject is a hittable with no bounding box, like an infinite plane
type unboundedObject struct{}

func (u unboundedObject) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	return nil, false
}

func (u unboundedObject) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func randomSpheres(random *rand.Rand, count int) []core.Hittable {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	objects := make([]core.Hittable, count)
	for i := range objects {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*20-10,
		)
		objects[i] = geometry.NewSphere(center, 0.2+random.Float64(), mat)
	}
	return objects
}

func TestNewBVH_Errors(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	tests := []struct {
		name    string
		objects []core.Hittable
	}{
		{"empty list", nil},
		{"unbounded object", []core.Hittable{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat),
			unboundedObject{},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := core.NewBVH(tt.objects, 0, 1); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBVH_SingleObject(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mat)

	bvh, err := core.NewBVH([]core.Hittable{sphere}, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	random := rand.New(rand.NewSource(1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := bvh.Hit(ray, 0.001, math.Inf(1), random)
	if !isHit {
		t.Fatal("expected hit on single-object BVH")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("hit.T = %v, expected 4", hit.T)
	}

	// A ray that misses the sphere should miss the BVH too
	miss := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 0, -1))
	if _, isHit := bvh.Hit(miss, 0.001, math.Inf(1), random); isHit {
		t.Error("expected miss")
	}
}

// TestBVH_MatchesLinearScan verifies the BVH returns exactly the same
// closest hit as a brute-force scan of every object, for many random rays
func TestBVH_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	objects := randomSpheres(random, 64)

	bvh, err := core.NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}
	linear := geometry.NewList(objects...)

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(
			random.Float64()*40-20,
			random.Float64()*40-20,
			random.Float64()*40-20,
		)
		direction := core.RandomUnitVector(random)
		ray := core.NewRay(origin, direction)

		bvhHit, bvhOk := bvh.Hit(ray, 0.001, math.Inf(1), random)
		linearHit, linearOk := linear.Hit(ray, 0.001, math.Inf(1), random)

		if bvhOk != linearOk {
			t.Fatalf("ray %d: BVH hit=%v, linear hit=%v", i, bvhOk, linearOk)
		}
		if bvhOk && math.Abs(bvhHit.T-linearHit.T) > 1e-9 {
			t.Fatalf("ray %d: BVH T=%v, linear T=%v", i, bvhHit.T, linearHit.T)
		}
	}
}

func TestBVH_BoundingBoxContainsAllObjects(t *testing.T) {
	random := rand.New(rand.NewSource(3))
	objects := randomSpheres(random, 16)

	bvh, err := core.NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	box, bounded := bvh.BoundingBox(0, 1)
	if !bounded {
		t.Fatal("expected BVH to be bounded")
	}
	for i, obj := range objects {
		objBox, _ := obj.BoundingBox(0, 1)
		union := box.Union(objBox)
		if union != box {
			t.Errorf("object %d box [%v, %v] not contained in BVH box [%v, %v]",
				i, objBox.Min, objBox.Max, box.Min, box.Max)
		}
	}
}

func TestBVH_DepthIsLogarithmic(t *testing.T) {
	random := rand.New(rand.NewSource(11))
	objects := randomSpheres(random, 128)

	bvh, err := core.NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	// A median split of 128 objects should stay close to log2(128) = 7
	if depth := bvh.Depth(); depth < 7 || depth > 9 {
		t.Errorf("Depth() = %d for 128 objects, expected around 7", depth)
	}
}
