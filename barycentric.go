package glclass

import (
	"golang.org/x/image/math/f32"
)

// cross2 is the z component of the cross product of two 2D vectors, i.e.
// twice the signed area of the triangle they span.
func cross2(u, v f32.Vec2) float32 {
	return u[0]*v[1] - u[1]*v[0]
}

func sub2(a, b f32.Vec2) f32.Vec2 {
	return f32.Vec2{a[0] - b[0], a[1] - b[1]}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Barycentric returns the weights of p relative to triangle abc as ratios of
// sub-triangle areas: (area PBC, area PCA, area PAB) / area ABC. Areas are
// unsigned, so the weights sum to 1 only for points inside the triangle.
// A degenerate triangle yields the zero vector.
func Barycentric(p, a, b, c f32.Vec2) f32.Vec3 {
	abc := absf(cross2(sub2(b, a), sub2(c, a)))
	if abc == 0 {
		return f32.Vec3{}
	}
	pa, pb, pc := sub2(a, p), sub2(b, p), sub2(c, p)
	return f32.Vec3{
		absf(cross2(pb, pc)) / abc,
		absf(cross2(pc, pa)) / abc,
		absf(cross2(pa, pb)) / abc,
	}
}

// Weights returns signed barycentric weights of p, which sum to 1 for any p,
// and whether p lies inside or on the edge of triangle abc. Winding does not
// matter.
func Weights(p, a, b, c f32.Vec2) (f32.Vec3, bool) {
	abc := cross2(sub2(b, a), sub2(c, a))
	if abc == 0 {
		return f32.Vec3{}, false
	}
	pa, pb, pc := sub2(a, p), sub2(b, p), sub2(c, p)
	w := f32.Vec3{
		cross2(pb, pc) / abc,
		cross2(pc, pa) / abc,
		cross2(pa, pb) / abc,
	}
	return w, w[0] >= 0 && w[1] >= 0 && w[2] >= 0
}

// Blend mixes three colors by barycentric weights.
func Blend(w f32.Vec3, c0, c1, c2 Color) Color {
	return Color{
		R: w[0]*c0.R + w[1]*c1.R + w[2]*c2.R,
		G: w[0]*c0.G + w[1]*c1.G + w[2]*c2.G,
		B: w[0]*c0.B + w[1]*c1.B + w[2]*c2.B,
		A: w[0]*c0.A + w[1]*c1.A + w[2]*c2.A,
	}
}

// FragCoordToNDC maps a window-space fragment coordinate to normalized device
// coordinates over a surface of the given size. Both spaces have their origin
// at the bottom-left.
func FragCoordToNDC(coord f32.Vec2, s Size) f32.Vec2 {
	return f32.Vec2{
		coord[0]/float32(s.Width)*2 - 1,
		coord[1]/float32(s.Height)*2 - 1,
	}
}
