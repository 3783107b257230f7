package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", a.Divide(2), NewVec3(0.5, 1, 1.5)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"MinVec", MinVec(a, b), NewVec3(1, -5, 3)},
		{"MaxVec", MaxVec(a, b), NewVec3(4, 2, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}
	if lsq := a.LengthSquared(); lsq != 14 {
		t.Errorf("Expected length squared 14, got %f", lsq)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !v.ApproxEquals(NewVec3(0.6, 0.8, 0), 1e-12) {
		t.Errorf("Unexpected normalized vector %v", v)
	}

	// Zero vector must not produce NaN
	zero := Vec3{}.Normalize()
	if math.IsNaN(zero.X) || math.IsNaN(zero.Y) || math.IsNaN(zero.Z) {
		t.Errorf("Normalize of zero vector produced NaN: %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"unit", NewVec3(1, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %v, expected %v", tt.v, got, tt.expected)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)
	got := Reflect(v, n)
	if !got.Equals(NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1,1,0), got %v", got)
	}
}

func TestRefract_NormalIncidence(t *testing.T) {
	uv := NewVec3(0, -1, 0)
	n := NewVec3(0, 1, 0)
	got := Refract(uv, n, 1.0/1.5)
	if !got.ApproxEquals(uv, 1e-12) {
		t.Errorf("Normal incidence should pass straight through, got %v", got)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	// 45 degree incidence from air into glass
	eta := 1.0 / 1.5
	uv := NewVec3(1, -1, 0).Normalize()
	n := NewVec3(0, 1, 0)
	got := Refract(uv, n, eta)

	sinIn := math.Sqrt(0.5)
	sinOut := got.X / got.Length()
	if math.Abs(sinOut-eta*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%f expected %f", sinOut, eta*sinIn)
	}
	if math.Abs(got.Length()-1) > 1e-9 {
		t.Errorf("Refracted unit vector should stay unit length, got %f", got.Length())
	}
}

func TestColor_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  float64
		expected Color
	}{
		{"in range", 0.2, 0.4, 0.6, Color{0.2, 0.4, 0.6}},
		{"out of range", 1.5, -0.2, 0.5, Color{1, 0, 0.5}},
		{"extremes", math.Inf(1), math.Inf(-1), 1, Color{1, 0, 1}},
		{"NaN", math.NaN(), 0, 0, Color{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewColor(tt.r, tt.g, tt.b)
			if got != tt.expected {
				t.Errorf("NewColor(%f, %f, %f) = %v, expected %v", tt.r, tt.g, tt.b, got, tt.expected)
			}
		})
	}
}

func TestColor_VecRoundTrip(t *testing.T) {
	c := NewColor(0.1, 0.5, 0.9)
	if c.Vec().Color() != c {
		t.Errorf("Round trip changed color: %v -> %v", c, c.Vec().Color())
	}
	if NewVec3(2, -1, 0.25).Color() != (Color{1, 0, 0.25}) {
		t.Errorf("Vec3.Color should clamp")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 2, 3), NewVec3(0, 0, -2), 0.5)
	if got := ray.At(1.5); !got.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1,2,0), got %v", got)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected time 0.5, got %f", ray.Time)
	}
}
