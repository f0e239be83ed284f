package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/example/raytracer/pkg/core"
)

// PixelAccumulator holds the running radiance sum and sample count for one
// pixel. The mean is Sum/Count; keeping the raw sum lets renders resume
// without losing precision.
type PixelAccumulator struct {
	Sum   core.Vec3
	Count uint32
}

// AccumulationBuffer stores per-pixel sample accumulators in row-major order
type AccumulationBuffer struct {
	Width  int
	Height int
	Pixels []PixelAccumulator
}

// NewAccumulationBuffer creates a zeroed buffer for the given dimensions
func NewAccumulationBuffer(width, height int) *AccumulationBuffer {
	return &AccumulationBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]PixelAccumulator, width*height),
	}
}

// AddSample accumulates one radiance sample into pixel (x, y)
func (b *AccumulationBuffer) AddSample(x, y int, sample core.Vec3) {
	p := &b.Pixels[y*b.Width+x]
	p.Sum = p.Sum.Add(sample)
	p.Count++
}

// At returns the accumulator for pixel (x, y)
func (b *AccumulationBuffer) At(x, y int) PixelAccumulator {
	return b.Pixels[y*b.Width+x]
}

// Mean returns the average radiance of pixel (x, y), or black if no samples
// have been accumulated
func (b *AccumulationBuffer) Mean(x, y int) core.Vec3 {
	p := b.Pixels[y*b.Width+x]
	if p.Count == 0 {
		return core.Vec3{}
	}
	return p.Sum.Multiply(1.0 / float64(p.Count))
}

// Clone returns a deep copy of the buffer, used to snapshot state for
// checkpointing while workers keep rendering
func (b *AccumulationBuffer) Clone() *AccumulationBuffer {
	pixels := make([]PixelAccumulator, len(b.Pixels))
	copy(pixels, b.Pixels)
	return &AccumulationBuffer{Width: b.Width, Height: b.Height, Pixels: pixels}
}

// Image converts the buffer to an 8-bit RGBA image with the given gamma.
// Gamma 2.0 matches the sqrt encoding conventional for path tracers.
func (b *AccumulationBuffer) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	invGamma := 1.0 / gamma

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			mean := b.Mean(x, y).Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: encodeChannel(mean.X, invGamma),
				G: encodeChannel(mean.Y, invGamma),
				B: encodeChannel(mean.Z, invGamma),
				A: 255,
			})
		}
	}
	return img
}

func encodeChannel(v, invGamma float64) uint8 {
	return uint8(math.Pow(v, invGamma)*255.0 + 0.5)
}
