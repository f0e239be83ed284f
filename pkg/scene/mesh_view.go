package scene

import (
	"fmt"
	"math"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/geometry"
	"github.com/example/raytracer/pkg/loaders"
	"github.com/example/raytracer/pkg/material"
	"github.com/example/raytracer/pkg/renderer"
)

// NewMeshView creates a studio scene around a PLY mesh file: the mesh on a
// checkered ground plane under a gradient sky, with the camera framed to
// its bounding box
func NewMeshView(path string) (*Scene, error) {
	triangles, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}

	mesh, err := geometry.NewMesh(triangles, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)))
	if err != nil {
		return nil, fmt.Errorf("scene: mesh %s: %w", path, err)
	}

	box, _ := mesh.BoundingBox(0, 1)
	center := box.Center()
	size := box.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent <= 0 {
		extent = 1
	}

	ground := material.NewTexturedLambertian(material.NewCheckeredColors(
		core.NewVec3(0.35, 0.35, 0.35),
		core.NewVec3(0.65, 0.65, 0.65),
		4.0/extent,
	))
	groundPlane := geometry.NewPlane(
		core.NewVec3(center.X, box.Min.Y, center.Z),
		core.NewVec3(center.X+1, box.Min.Y, center.Z),
		core.NewVec3(center.X, box.Min.Y, center.Z+1),
		extent,
		ground,
	)

	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      center.Add(core.NewVec3(0.8*extent, 0.6*extent, 1.6*extent)),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	})

	return &Scene{
		Name:        "mesh-view",
		Camera:      camera,
		World:       geometry.NewList(mustBVH([]core.Hittable{mesh}, 0, 1), groundPlane),
		Background:  NewGradient(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), core.NewVec3(0.5, 0.7, 1.0)),
		AspectRatio: 16.0 / 9.0,
		description: fmt.Sprintf("mesh view, file=%s, triangles=%d", path, mesh.TriangleCount()),
	}, nil
}
