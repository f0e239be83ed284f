package scene

import (
	"crypto/sha256"
	"fmt"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. Scenes are built
// once by a constructor and not modified afterwards.
type Scene struct {
	Name        string           // Scene identifier, used for lookup and fingerprinting
	Camera      *renderer.Camera // Ray generator
	World       core.Hittable    // Scene geometry, usually a BVH plus unbounded objects
	Background  core.Background  // Color for rays that escape the scene
	AspectRatio float64          // Width / height used to derive image height
	description string           // Render-relevant parameters folded into the fingerprint
}

// Fingerprint returns a SHA-256 digest identifying the scene's
// render-relevant content. Checkpoints record it so a resume against a
// different scene (or different scene parameters) is rejected.
func (s *Scene) Fingerprint() [32]byte {
	return sha256.Sum256([]byte(s.Name + "\x00" + s.description))
}

// Lookup returns the scene constructor registered under the given name.
// The seed only affects procedurally generated scenes.
func Lookup(name string, seed int64) (*Scene, error) {
	switch name {
	case "cornell-box":
		return NewCornellBox(), nil
	case "cornell-smoke":
		return NewCornellSmoke(), nil
	case "random-spheres":
		return NewRandomSpheres(seed), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (available: cornell-box, cornell-smoke, random-spheres)", name)
	}
}
