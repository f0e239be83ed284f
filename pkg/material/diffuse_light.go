package material

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// DiffuseLight is an emission-only material. It never scatters; its texture
// value is the emitted radiance, with components above 1 representing
// un-normalized light intensity.
type DiffuseLight struct {
	Emit core.Texture
}

// NewDiffuseLight creates a light emitting a solid color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light emitting a texture's value
func NewTexturedDiffuseLight(emit core.Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter absorbs every incoming ray
func (dl *DiffuseLight) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the emission texture's value at the hit coordinates
func (dl *DiffuseLight) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return dl.Emit.Value(u, v, point)
}
