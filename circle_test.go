package glclass_test

import (
	"math"
	"slices"
	"testing"

	"github.com/go-theft-auto/glclass"
)

func TestCircleVertexCount(t *testing.T) {
	for _, segments := range []int{3, 8, 32, 100} {
		g, err := glclass.Circle(segments, 0.5)
		if err != nil {
			t.Fatalf("Circle(%d): %v", segments, err)
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("Circle(%d) invalid: %v", segments, err)
		}
		if n := g.VertexCount(); n != segments+2 {
			t.Errorf("Circle(%d) has %d vertices, want %d", segments, n, segments+2)
		}
		if g.Count != segments+2 || g.Topology != glclass.TriangleFan {
			t.Errorf("Circle(%d) draws %d as %v", segments, g.Count, g.Topology)
		}

		pos := g.Layout[0].Read(g.Buffers[0])
		if !slices.Equal(pos[0], []float32{0, 0}) {
			t.Errorf("center = %v", pos[0])
		}
		if !slices.Equal(pos[len(pos)-1], pos[1]) {
			t.Errorf("closing vertex %v != first ring vertex %v", pos[len(pos)-1], pos[1])
		}
		for i, p := range pos[1:] {
			r := math.Hypot(float64(p[0]), float64(p[1]))
			if math.Abs(r-0.5) > 1e-6 {
				t.Errorf("ring vertex %d at radius %v", i, r)
			}
		}
	}
}

func TestCircleColors(t *testing.T) {
	g, err := glclass.Circle(4, 1)
	if err != nil {
		t.Fatal(err)
	}
	colors := g.Layout[1].Read(g.Buffers[0])
	want := [][]float32{
		{1, 0.5}, // center
		{1, 0.5}, // angle 0
	}
	for i, w := range want {
		if !slices.Equal(colors[i], w) {
			t.Errorf("color %d = %v, want %v", i, colors[i], w)
		}
	}
	// Quarter turn: cos = 0, sin = 1.
	if c := colors[2]; !near(c[0], 0.5, 1e-6) || !near(c[1], 1, 1e-6) {
		t.Errorf("quarter-turn color = %v", c)
	}
}

func TestCircleRejectsBadInput(t *testing.T) {
	if _, err := glclass.Circle(2, 0.5); err == nil {
		t.Error("expected error for 2 segments")
	}
	if _, err := glclass.Circle(16, 0); err == nil {
		t.Error("expected error for zero radius")
	}
}
