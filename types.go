// Package glclass holds introductory real-time rendering exercises: clearing a
// framebuffer, drawing triangles, circles and rectangles, rendering into
// several viewports and interpolating colors with barycentric coordinates.
//
// The package itself issues no graphics calls. Exercises describe shaders,
// geometry and clear colors; a Backend (OpenGL or software) turns those
// descriptions into programs, meshes and draw calls, and a Runner drives the
// per-frame render step against a Surface.
package glclass

// Size is the pixel size of a drawable surface.
type Size struct {
	Width, Height int
}

// Empty reports whether the size has no drawable area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Viewport is a rectangle in window coordinates (origin bottom-left).
// The zero Viewport stands for the full surface.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// IsZero reports whether v is the zero Viewport.
func (v Viewport) IsZero() bool {
	return v == Viewport{}
}

// Resolve returns v, or the full surface if v is zero.
func (v Viewport) Resolve(s Size) Viewport {
	if v.IsZero() {
		return Viewport{Width: s.Width, Height: s.Height}
	}
	return v
}

// Color is a linear RGBA color with float components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common clear colors.
var (
	ColorBlack = Color{0, 0, 0, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// RGBA8 converts the color to 8-bit components, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(v float32) uint8 {
	return uint8(clampf(v, 0, 1)*255 + 0.5)
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
