package scene

import (
	"fmt"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/geometry"
	"github.com/example/raytracer/pkg/material"
	"github.com/example/raytracer/pkg/renderer"
)

// mustBVH builds a BVH over static scene geometry. Scene constructors only
// hand it bounded, finite objects, so a build failure is a programming error.
func mustBVH(objects []core.Hittable, time0, time1 float64) *core.BVHNode {
	bvh, err := core.NewBVH(objects, time0, time1)
	if err != nil {
		panic(fmt.Sprintf("scene: BVH build failed: %v", err))
	}
	return bvh
}

// cornellCamera positions the camera outside the box looking in
func cornellCamera() *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 1.0,
		VFov:        40.0,
		Aperture:    0.0,
	})
}

// cornellWalls builds the five walls of the standard 555-unit Cornell box.
// All faces point into the box interior.
func cornellWalls(white, red, green core.Material) []core.Hittable {
	return []core.Hittable{
		geometry.NewYZRect(0, 555, 0, 555, 555, green, false), // left wall
		geometry.NewYZRect(0, 555, 0, 555, 0, red, true),      // right wall
		geometry.NewXZRect(0, 555, 0, 555, 0, white, true),    // floor
		geometry.NewXZRect(0, 555, 0, 555, 555, white, false), // ceiling
		geometry.NewXYRect(0, 555, 0, 555, 555, white, false), // back wall
	}
}

// NewCornellBox creates the classic Cornell box: white/red/green walls, a
// ceiling light, and two rotated blocks
func NewCornellBox() *Scene {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	objects := cornellWalls(white, red, green)
	objects = append(objects, geometry.NewXZRect(213, 343, 227, 332, 554, light, false))

	// Tall block, rotated 15 degrees and pushed to the back left
	tall := geometry.NewTranslate(
		geometry.NewRotateY(
			geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white),
			15,
		),
		core.NewVec3(265, 0, 295),
	)

	// Short block, rotated -18 degrees at the front right
	short := geometry.NewTranslate(
		geometry.NewRotateY(
			geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white),
			-18,
		),
		core.NewVec3(130, 0, 65),
	)

	objects = append(objects, tall, short)

	return &Scene{
		Name:        "cornell-box",
		Camera:      cornellCamera(),
		World:       mustBVH(objects, 0, 1),
		Background:  NewPlain(core.NewVec3(0, 0, 0)),
		AspectRatio: 1.0,
		description: "cornell box, 555 units, two blocks, 15/15/15 light",
	}
}

// NewCornellSmoke creates the Cornell box variant where the two blocks are
// replaced by participating media: white fog and black smoke
func NewCornellSmoke() *Scene {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	objects := cornellWalls(white, red, green)
	// A dimmer but larger light than the plain box, matching the softer look
	objects = append(objects, geometry.NewXZRect(113, 443, 127, 432, 554, light, false))

	tall := geometry.NewTranslate(
		geometry.NewRotateY(
			geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white),
			15,
		),
		core.NewVec3(265, 0, 295),
	)
	short := geometry.NewTranslate(
		geometry.NewRotateY(
			geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white),
			-18,
		),
		core.NewVec3(130, 0, 65),
	)

	smoke := geometry.NewConstantMedium(tall, 0.01, material.NewIsotropic(core.NewVec3(0, 0, 0)))
	fog := geometry.NewConstantMedium(short, 0.01, material.NewIsotropic(core.NewVec3(1, 1, 1)))
	objects = append(objects, smoke, fog)

	return &Scene{
		Name:        "cornell-smoke",
		Camera:      cornellCamera(),
		World:       mustBVH(objects, 0, 1),
		Background:  NewPlain(core.NewVec3(0, 0, 0)),
		AspectRatio: 1.0,
		description: "cornell box, 555 units, smoke and fog blocks, 7/7/7 light",
	}
}
