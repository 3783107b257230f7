package core

// Color is an RGB triple with every channel saturated to [0, 1].
// Construct it with NewColor; the zero value is black.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a color, clamping each channel to [0, 1]
func NewColor(r, g, b float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

// Vec returns the color as a vector for attenuation arithmetic
func (c Color) Vec() Vec3 {
	return Vec3{X: c.R, Y: c.G, Z: c.B}
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

// clamp01 saturates v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}
