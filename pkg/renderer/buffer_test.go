package renderer

import (
	"math"
	"testing"

	"github.com/example/raytracer/pkg/core"
)

func TestAccumulationBuffer_AddSampleAndMean(t *testing.T) {
	buf := NewAccumulationBuffer(4, 3)

	buf.AddSample(2, 1, core.NewVec3(1, 0, 0))
	buf.AddSample(2, 1, core.NewVec3(0, 1, 0))

	acc := buf.At(2, 1)
	if acc.Count != 2 {
		t.Errorf("Count = %d, expected 2", acc.Count)
	}
	if acc.Sum != core.NewVec3(1, 1, 0) {
		t.Errorf("Sum = %v, expected (1, 1, 0)", acc.Sum)
	}
	if mean := buf.Mean(2, 1); mean != core.NewVec3(0.5, 0.5, 0) {
		t.Errorf("Mean = %v, expected (0.5, 0.5, 0)", mean)
	}

	// Untouched pixels stay zero
	if mean := buf.Mean(0, 0); mean != (core.Vec3{}) {
		t.Errorf("Mean of empty pixel = %v, expected black", mean)
	}
}

func TestAccumulationBuffer_CloneIsIndependent(t *testing.T) {
	buf := NewAccumulationBuffer(2, 2)
	buf.AddSample(0, 0, core.NewVec3(1, 1, 1))

	clone := buf.Clone()
	buf.AddSample(0, 0, core.NewVec3(1, 1, 1))

	if clone.At(0, 0).Count != 1 {
		t.Errorf("clone Count = %d, expected 1 (unaffected by later samples)", clone.At(0, 0).Count)
	}
	if buf.At(0, 0).Count != 2 {
		t.Errorf("original Count = %d, expected 2", buf.At(0, 0).Count)
	}
}

func TestAccumulationBuffer_ImageGamma(t *testing.T) {
	buf := NewAccumulationBuffer(1, 1)
	buf.AddSample(0, 0, core.NewVec3(0.25, 1.0, 0.0))

	img := buf.Image(2.0)
	pixel := img.RGBAAt(0, 0)

	// Gamma 2 encodes 0.25 as sqrt(0.25) = 0.5
	if expected := uint8(math.Sqrt(0.25)*255 + 0.5); pixel.R != expected {
		t.Errorf("R = %d, expected %d", pixel.R, expected)
	}
	if pixel.G != 255 {
		t.Errorf("G = %d, expected 255", pixel.G)
	}
	if pixel.B != 0 {
		t.Errorf("B = %d, expected 0", pixel.B)
	}
	if pixel.A != 255 {
		t.Errorf("A = %d, expected 255", pixel.A)
	}
}

func TestAccumulationBuffer_ImageClampsOverbright(t *testing.T) {
	buf := NewAccumulationBuffer(1, 1)
	buf.AddSample(0, 0, core.NewVec3(15, 15, 15)) // Emissive surfaces exceed 1

	pixel := buf.Image(2.0).RGBAAt(0, 0)
	if pixel.R != 255 || pixel.G != 255 || pixel.B != 255 {
		t.Errorf("overbright pixel = %v, expected clamped white", pixel)
	}
}
