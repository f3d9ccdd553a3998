package soft

import (
	"math"

	"golang.org/x/image/math/f32"

	"github.com/go-theft-auto/glclass"
)

// vertex is a vertex after the fixed software vertex stage: slot 0 is the
// clip-space position, slot 1 (if bound) is passed through as the varying.
type vertex struct {
	win     f32.Vec2
	varying []float32
}

// drawMesh assembles the mesh into triangles and fills each one.
func (r *Renderer) drawMesh(g *glclass.Geometry, shade glclass.FragmentFunc, uniforms glclass.Uniforms) {
	pos, _ := g.Layout.Slot(0)
	attr, hasVarying := g.Layout.Slot(1)

	vertices := make(map[int]vertex)
	fetch := func(i int) vertex {
		if v, ok := vertices[i]; ok {
			return v
		}
		v := vertex{win: r.toWindow(pos.At(g.Buffers[pos.Buffer], i))}
		if hasVarying {
			v.varying = attr.At(g.Buffers[attr.Buffer], i)
		}
		vertices[i] = v
		return v
	}

	frag := &glclass.Fragment{Uniforms: uniforms}
	if hasVarying {
		frag.Varying = make([]float32, attr.Components)
	}
	for _, tri := range g.Topology.Assemble(g.Order()) {
		r.fillTriangle(fetch(tri[0]), fetch(tri[1]), fetch(tri[2]), frag, shade)
	}
}

// toWindow applies the perspective divide and the viewport transform.
func (r *Renderer) toWindow(p []float32) f32.Vec2 {
	var x, y, w float32 = p[0], 0, 1
	if len(p) > 1 {
		y = p[1]
	}
	if len(p) == 4 && p[3] != 0 {
		w = p[3]
	}
	vp := r.viewport
	return f32.Vec2{
		float32(vp.X) + (x/w+1)*0.5*float32(vp.Width),
		float32(vp.Y) + (y/w+1)*0.5*float32(vp.Height),
	}
}

// fillTriangle shades every pixel whose center lies inside the triangle and
// inside the viewport. Pixels on a shared edge are shaded by both triangles.
func (r *Renderer) fillTriangle(a, b, c vertex, frag *glclass.Fragment, shade glclass.FragmentFunc) {
	vp := r.viewport
	height := r.fb.Bounds().Dy()

	minX := max(int(math.Floor(float64(min(a.win[0], b.win[0], c.win[0])))), vp.X, 0)
	maxX := min(int(math.Ceil(float64(max(a.win[0], b.win[0], c.win[0])))), vp.X+vp.Width, r.fb.Bounds().Dx())
	minY := max(int(math.Floor(float64(min(a.win[1], b.win[1], c.win[1])))), vp.Y, 0)
	maxY := min(int(math.Ceil(float64(max(a.win[1], b.win[1], c.win[1])))), vp.Y+vp.Height, height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			center := f32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			w, inside := glclass.Weights(center, a.win, b.win, c.win)
			if !inside {
				continue
			}
			for k := range frag.Varying {
				frag.Varying[k] = w[0]*a.varying[k] + w[1]*b.varying[k] + w[2]*c.varying[k]
			}
			frag.Coord = center
			r.fb.SetRGBA(x, height-1-y, rgba(shade(frag)))
		}
	}
}
