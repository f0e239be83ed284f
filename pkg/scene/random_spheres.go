package scene

import (
	"fmt"
	"math/rand"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/geometry"
	"github.com/example/raytracer/pkg/material"
	"github.com/example/raytracer/pkg/renderer"
)

// NewRandomSpheres creates a procedurally generated field of small spheres
// around three large feature spheres, on an infinite checkered ground plane.
// The same seed always produces the same scene.
func NewRandomSpheres(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))

	ground := material.NewTexturedLambertian(material.NewCheckeredColors(
		core.NewVec3(0.2, 0.3, 0.1),
		core.NewVec3(0.9, 0.9, 0.9),
		0.5,
	))
	groundPlane := geometry.NewPlane(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		10.0,
		ground,
	)

	var objects []core.Hittable

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			// Leave a clearing around the large glass sphere
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse spheres bounce upward during the shutter interval
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				center1 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				objects = append(objects, geometry.NewMovingSphere(
					center, center1, 0.0, 1.0, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				fuzz := 0.5 * random.Float64()
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	// Three large feature spheres
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	// A small metal tetrahedron behind the glass sphere
	tetrahedron, err := geometry.NewMesh(tetrahedronTriangles(core.NewVec3(0, 0, -3), 1.2), material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.05))
	if err != nil {
		panic(fmt.Sprintf("scene: tetrahedron mesh: %v", err))
	}
	objects = append(objects, tetrahedron)

	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	})

	// The ground plane is unbounded and cannot live inside the BVH, so the
	// world is a list of the BVH plus the plane
	world := geometry.NewList(mustBVH(objects, 0, 1), groundPlane)

	return &Scene{
		Name:        "random-spheres",
		Camera:      camera,
		World:       world,
		Background:  NewGradient(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
		AspectRatio: 16.0 / 9.0,
		description: fmt.Sprintf("random spheres, seed=%d, checkered ground plane", seed),
	}
}

// tetrahedronTriangles returns the four faces of a regular-ish tetrahedron
// with its base centered at the given point
func tetrahedronTriangles(base core.Vec3, size float64) []geometry.MeshTriangle {
	a := base.Add(core.NewVec3(-size/2, 0, -size/2))
	b := base.Add(core.NewVec3(size/2, 0, -size/2))
	c := base.Add(core.NewVec3(0, 0, size/2))
	apex := base.Add(core.NewVec3(0, size, 0))

	return []geometry.MeshTriangle{
		{V0: a, V1: b, V2: apex},
		{V0: b, V1: c, V2: apex},
		{V0: c, V1: a, V2: apex},
		{V0: a, V1: c, V2: b}, // base
	}
}
