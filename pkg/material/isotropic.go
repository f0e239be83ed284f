package material

import (
	"math/rand"

	"github.com/example/raytracer/pkg/core"
)

// Isotropic scatters toward a uniformly random direction on the unit
// sphere. It serves as the phase function of volumetric media, not as a
// surface material.
type Isotropic struct {
	Albedo core.Texture
}

// NewIsotropic creates an isotropic phase function with a solid albedo
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with a texture
func NewTexturedIsotropic(albedo core.Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter sends the ray in a uniformly random direction
func (i *Isotropic) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, core.RandomUnitVector(random), rayIn.Time),
		Attenuation: i.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
