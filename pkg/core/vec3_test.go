package core

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-9

func vecsEqual(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", NewVec3(1, 2, 3).Add(NewVec3(4, 5, 6)), NewVec3(5, 7, 9)},
		{"subtract", NewVec3(4, 5, 6).Subtract(NewVec3(1, 2, 3)), NewVec3(3, 3, 3)},
		{"multiply scalar", NewVec3(1, -2, 3).Multiply(2), NewVec3(2, -4, 6)},
		{"multiply componentwise", NewVec3(1, 2, 3).MultiplyVec(NewVec3(2, 0.5, -1)), NewVec3(2, 1, -3)},
		{"negate", NewVec3(1, -2, 3).Negate(), NewVec3(-1, 2, -3)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"clamp", NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecsEqual(tt.got, tt.expected, epsilon) {
				t.Errorf("got %v, expected %v", tt.got, tt.expected)
			}
		})
	}
}

func TestVec3_LengthAndNormalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	if got := v.Length(); math.Abs(got-5) > epsilon {
		t.Errorf("Length() = %v, expected 5", got)
	}
	if got := v.LengthSquared(); math.Abs(got-25) > epsilon {
		t.Errorf("LengthSquared() = %v, expected 25", got)
	}

	n := v.Normalize()
	if math.Abs(n.Length()-1) > epsilon {
		t.Errorf("normalized length = %v, expected 1", n.Length())
	}
	if !vecsEqual(n, NewVec3(0.6, 0.8, 0), epsilon) {
		t.Errorf("Normalize() = %v, expected (0.6, 0.8, 0)", n)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis(%d) = %v, expected %v", axis, got, expected)
		}
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("expected tiny vector to be near zero")
	}
	if NewVec3(0.1, 0, 0).NearZero() {
		t.Error("expected (0.1, 0, 0) to not be near zero")
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("expected finite vector to be finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("expected NaN vector to be non-finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("expected Inf vector to be non-finite")
	}
}

func TestReflect(t *testing.T) {
	// A ray going down-right reflecting off a floor goes up-right
	incoming := NewVec3(1, -1, 0).Normalize()
	normal := NewVec3(0, 1, 0)
	reflected := Reflect(incoming, normal)
	expected := NewVec3(1, 1, 0).Normalize()
	if !vecsEqual(reflected, expected, epsilon) {
		t.Errorf("Reflect() = %v, expected %v", reflected, expected)
	}
}

func TestRefract(t *testing.T) {
	// Straight-on refraction passes through unchanged
	incoming := NewVec3(0, -1, 0)
	normal := NewVec3(0, 1, 0)
	refracted := Refract(incoming, normal, 1.5)
	if !vecsEqual(refracted.Normalize(), NewVec3(0, -1, 0), epsilon) {
		t.Errorf("straight-on refraction = %v, expected (0, -1, 0)", refracted)
	}

	// Oblique entry into a denser medium bends toward the normal
	incoming = NewVec3(1, -1, 0).Normalize()
	refracted = Refract(incoming, normal, 1.0/1.5).Normalize()
	sinIncident := math.Abs(incoming.X)
	sinRefracted := math.Abs(refracted.X)
	if sinRefracted >= sinIncident {
		t.Errorf("refraction into denser medium should bend toward normal: sin in %v, sin out %v",
			sinIncident, sinRefracted)
	}
	// Snell's law: sin(out) = sin(in) / 1.5
	if math.Abs(sinRefracted-sinIncident/1.5) > 1e-6 {
		t.Errorf("Snell's law violated: sin out %v, expected %v", sinRefracted, sinIncident/1.5)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAt(NewVec3(1, 2, 3), NewVec3(1, 0, 0), 0.5)
	if got := ray.At(2); !vecsEqual(got, NewVec3(3, 2, 3), epsilon) {
		t.Errorf("At(2) = %v, expected (3, 2, 3)", got)
	}
	if ray.Time != 0.5 {
		t.Errorf("Time = %v, expected 0.5", ray.Time)
	}
}

func TestRandomVectors(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		if v := RandomInUnitSphere(random); v.Length() >= 1 {
			t.Fatalf("RandomInUnitSphere returned %v with length %v", v, v.Length())
		}
		if v := RandomUnitVector(random); math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("RandomUnitVector returned %v with length %v", v, v.Length())
		}
		if v := RandomInUnitDisk(random); v.Z != 0 || v.Length() >= 1 {
			t.Fatalf("RandomInUnitDisk returned %v", v)
		}
	}
}
