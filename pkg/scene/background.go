package scene

import (
	"github.com/example/raytracer/pkg/core"
)

// Plain is a constant background color, used by enclosed scenes like the
// Cornell box where escaped rays should contribute nothing (or a fixed tint)
type Plain struct {
	color core.Vec3
}

// NewPlain creates a constant-color background
func NewPlain(color core.Vec3) *Plain {
	return &Plain{color: color}
}

// Color returns the constant background color for any ray
func (p *Plain) Color(ray core.Ray) core.Vec3 {
	return p.color
}

// Gradient interpolates between two colors along a world axis. The classic
// sky is a Y gradient from white at the horizon to light blue overhead.
type Gradient struct {
	Axis   core.Vec3 // Direction of the gradient, normalized at construction
	Nadir  core.Vec3 // Color where the ray direction opposes the axis
	Zenith core.Vec3 // Color where the ray direction aligns with the axis
}

// NewGradient creates a gradient background along the given axis
func NewGradient(axis, nadir, zenith core.Vec3) *Gradient {
	return &Gradient{Axis: axis.Normalize(), Nadir: nadir, Zenith: zenith}
}

// Color maps the ray direction's projection on the axis from [-1,1] to [0,1]
// and linearly interpolates between the nadir and zenith colors
func (g *Gradient) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Dot(g.Axis) + 1.0)
	return g.Nadir.Multiply(1.0 - t).Add(g.Zenith.Multiply(t))
}
