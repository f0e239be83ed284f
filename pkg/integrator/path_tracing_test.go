package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/geometry"
	"github.com/example/raytracer/pkg/material"
)

// solidBackground returns a fixed color for any ray
type solidBackground struct {
	color core.Vec3
}

func (b solidBackground) Color(ray core.Ray) core.Vec3 {
	return b.color
}

// countingHittable records how many intersection queries it receives
type countingHittable struct {
	calls int
}

func (c *countingHittable) Hit(ray core.Ray, tMin, tMax float64, random *rand.Rand) (*core.HitRecord, bool) {
	c.calls++
	return nil, false
}

func (c *countingHittable) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

// fixedScatterMaterial scatters with a fixed attenuation in a fixed direction
type fixedScatterMaterial struct {
	attenuation core.Vec3
	direction   core.Vec3
}

func (m fixedScatterMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, m.direction),
		Attenuation: m.attenuation,
	}, true
}

func TestRayColor_DepthExhaustedReturnsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator(10)
	world := &countingHittable{}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	got := pt.RayColor(ray, world, solidBackground{core.NewVec3(1, 1, 1)}, testRandom(), 0)
	if got != (core.Vec3{}) {
		t.Errorf("RayColor at depth 0 = %v, expected black", got)
	}
	if world.calls != 0 {
		t.Errorf("depth-exhausted ray made %d world queries, expected 0", world.calls)
	}
}

func TestRayColor_MissReturnsBackgroundWithoutRecursing(t *testing.T) {
	pt := NewPathTracingIntegrator(10)
	world := &countingHittable{}
	background := solidBackground{core.NewVec3(0.2, 0.4, 0.6)}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	got := pt.RayColor(ray, world, background, testRandom(), 10)
	if got != background.color {
		t.Errorf("RayColor on miss = %v, expected background %v", got, background.color)
	}
	// A miss terminates the path: exactly one world query
	if world.calls != 1 {
		t.Errorf("miss made %d world queries, expected 1", world.calls)
	}
}

func TestRayColor_AbsorbingMaterialReturnsEmission(t *testing.T) {
	pt := NewPathTracingIntegrator(10)
	light := material.NewDiffuseLight(core.NewVec3(3, 2, 1))
	world := geometry.NewList(geometry.NewXZRect(-1, 1, -1, 1, -1, light, true))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))

	got := pt.RayColor(ray, world, solidBackground{core.Vec3{}}, testRandom(), 10)
	if got != core.NewVec3(3, 2, 1) {
		t.Errorf("RayColor on light = %v, expected its emission (3, 2, 1)", got)
	}
}

func TestRayColor_AttenuationMultipliesRecursiveRadiance(t *testing.T) {
	pt := NewPathTracingIntegrator(10)

	// One bouncing surface: the ray hits, scatters straight up, misses
	// everything, and picks up the background through the attenuation
	mat := fixedScatterMaterial{
		attenuation: core.NewVec3(0.5, 0.25, 0.125),
		direction:   core.NewVec3(0, 1, 0),
	}
	world := geometry.NewList(geometry.NewXZRect(-10, 10, -10, 10, -1, mat, true))
	background := solidBackground{core.NewVec3(1, 1, 1)}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))

	got := pt.RayColor(ray, world, background, testRandom(), 10)
	expected := core.NewVec3(0.5, 0.25, 0.125)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("RayColor = %v, expected attenuation * background = %v", got, expected)
	}
}

func TestRayColor_BounceLimitTerminates(t *testing.T) {
	pt := NewPathTracingIntegrator(3)

	// Two parallel mirrors bounce the ray forever; the depth limit must end it
	mat := fixedScatterMaterial{
		attenuation: core.NewVec3(0.9, 0.9, 0.9),
		direction:   core.NewVec3(0, 1, 0),
	}
	top := fixedScatterMaterial{
		attenuation: core.NewVec3(0.9, 0.9, 0.9),
		direction:   core.NewVec3(0, -1, 0),
	}
	world := geometry.NewList(
		geometry.NewXZRect(-10, 10, -10, 10, -1, mat, true),
		geometry.NewXZRect(-10, 10, -10, 10, 1, top, false),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))
	got := pt.RayColor(ray, world, solidBackground{core.NewVec3(1, 1, 1)}, testRandom(), 3)

	// 3 levels of recursion, the last one exhausted: contribution is zero
	if got != (core.Vec3{}) {
		t.Errorf("RayColor between mirrors = %v, expected black at the bounce limit", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Vec3
		expected core.Vec3
	}{
		{"finite passthrough", core.NewVec3(0.1, 0.2, 0.3), core.NewVec3(0.1, 0.2, 0.3)},
		{"nan zeroed", core.NewVec3(math.NaN(), 0.5, 0.5), core.NewVec3(0, 0.5, 0.5)},
		{"inf zeroed", core.NewVec3(0.5, math.Inf(1), 0.5), core.NewVec3(0.5, 0, 0.5)},
		{"negative zeroed", core.NewVec3(-0.1, 0.5, 0.5), core.NewVec3(0, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitize(tt.in); got != tt.expected {
				t.Errorf("sanitize(%v) = %v, expected %v", tt.in, got, tt.expected)
			}
		})
	}
}

func testRandom() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
