package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
		Hit:    true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction.Normalize()
	if !actual.ApproxEquals(expected, 1e-10) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_FuzzyReflectionStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Grazing ray so that fuzz frequently pushes reflections below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.05, 0), core.NewVec3(1, -0.05, 0))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
		Hit:    true,
	}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		dot := scatter.Scattered.Direction.Dot(hit.Normal)
		if didScatter != (dot > 0) {
			t.Fatalf("Scatter flag %v inconsistent with dot %f", didScatter, dot)
		}
		if !didScatter {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}

func TestMetal_FuzzIndependentOfDirectionLength(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 1.0)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
		Hit:    true,
	}
	unit := core.NewVec3(0, -1, -1).Normalize()
	mirror := core.NewVec3(0, -1, 1).Normalize()

	unitSampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
	longSampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))

	totalAngle := 0.0
	const draws = 2000
	for i := 0; i < draws; i++ {
		unitScatter, unitOK := metal.Scatter(core.NewRay(hit.Point, unit), hit, unitSampler)
		longScatter, longOK := metal.Scatter(core.NewRay(hit.Point, unit.Multiply(10)), hit, longSampler)

		if unitOK != longOK {
			t.Fatalf("Draw %d: scatter flag differs with direction length (%v vs %v)", i, unitOK, longOK)
		}
		a := unitScatter.Scattered.Direction.Normalize()
		b := longScatter.Scattered.Direction.Normalize()
		if !a.ApproxEquals(b, 1e-9) {
			t.Fatalf("Draw %d: scattered direction depends on |dir|: %v vs %v", i, a, b)
		}
		totalAngle += math.Acos(math.Max(-1, math.Min(1, a.Dot(mirror))))
	}

	// Fuzz 1 spreads reflections far from the mirror direction
	if mean := totalAngle / draws; mean < 0.3 {
		t.Errorf("Expected a wide fuzz spread, mean angle from mirror %f rad", mean)
	}
}
