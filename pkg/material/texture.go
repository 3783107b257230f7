package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and world point p
	Value(u, v float64, p core.Vec3) core.Color
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Color {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D checker pattern
type CheckerTexture struct {
	Even  Texture
	Odd   Texture
	Scale float64 // Checker frequency; higher values give smaller checks
}

// NewCheckerTexture creates a checker of two solid colors
func NewCheckerTexture(scale float64, even, odd core.Color) *CheckerTexture {
	return &CheckerTexture{
		Even:  NewSolidColor(even),
		Odd:   NewSolidColor(odd),
		Scale: scale,
	}
}

// Value picks Even or Odd from the sign of the product of sines
func (c *CheckerTexture) Value(u, v float64, p core.Vec3) core.Color {
	sines := math.Sin(c.Scale*p.X) * math.Sin(c.Scale*p.Y) * math.Sin(c.Scale*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Color) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture at the given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Color {
	if t.Width == 0 || t.Height == 0 {
		// Solid cyan marks a missing image
		return core.NewColor(0, 1, 1)
	}

	// Clamp UV coordinates to [0, 1]
	u = math.Max(0, math.Min(1, u))
	v = 1.0 - math.Max(0, math.Min(1, v)) // Flip V to image coordinates

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
