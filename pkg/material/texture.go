package material

import (
	"math"

	"github.com/example/raytracer/pkg/core"
)

// SolidColor is a texture with the same color everywhere
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkered alternates between two sub-textures in a 3D checker pattern.
// The parity of sin(d*x)*sin(d*y)*sin(d*z) flips across every spatial axis,
// so tiles alternate in all directions without seam aliasing.
type Checkered struct {
	Odd, Even   core.Texture
	TileDensity float64
}

// NewCheckered creates a checker texture from two sub-textures
func NewCheckered(odd, even core.Texture, tileDensity float64) *Checkered {
	return &Checkered{Odd: odd, Even: even, TileDensity: tileDensity}
}

// NewCheckeredColors creates a checker texture from two solid colors
func NewCheckeredColors(odd, even core.Vec3, tileDensity float64) *Checkered {
	return NewCheckered(NewSolidColor(odd), NewSolidColor(even), tileDensity)
}

// Value selects the odd or even sub-texture by the sign of the sine product
func (c *Checkered) Value(u, v float64, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.TileDensity*point.X) *
		math.Sin(c.TileDensity*point.Y) *
		math.Sin(c.TileDensity*point.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, point)
	}
	return c.Even.Value(u, v, point)
}
