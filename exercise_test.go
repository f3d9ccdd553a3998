package glclass_test

import (
	"testing"

	"github.com/go-theft-auto/glclass"
)

func TestExerciseRegistry(t *testing.T) {
	want := map[string]struct {
		animated bool
		topology glclass.Topology
		draws    bool
	}{
		"clear":       {false, 0, false},
		"triangle":    {false, glclass.Triangles, true},
		"circle":      {true, glclass.TriangleFan, true},
		"rectangle":   {true, glclass.TriangleStrip, true},
		"viewport":    {false, glclass.Triangles, true},
		"fan":         {true, glclass.TriangleFan, true},
		"barycentric": {true, glclass.Triangles, true},
	}

	exercises := glclass.Exercises()
	if len(exercises) != len(want) {
		t.Fatalf("got %d exercises, want %d", len(exercises), len(want))
	}

	size := glclass.Size{Width: 640, Height: 480}
	for _, ex := range exercises {
		t.Run(ex.Name, func(t *testing.T) {
			w, ok := want[ex.Name]
			if !ok {
				t.Fatalf("unexpected exercise %q", ex.Name)
			}
			if ex.Animated != w.animated {
				t.Errorf("Animated = %v, want %v", ex.Animated, w.animated)
			}
			if ex.Draws() != w.draws {
				t.Fatalf("Draws = %v, want %v", ex.Draws(), w.draws)
			}

			got, err := glclass.Lookup(ex.Name)
			if err != nil || got.Name != ex.Name || got.Animated != ex.Animated {
				t.Errorf("Lookup(%q) = %v, %v", ex.Name, got, err)
			}

			if !ex.Draws() {
				return
			}
			g, err := ex.Geometry(size)
			if err != nil {
				t.Fatalf("Geometry: %v", err)
			}
			if err := g.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if g.Topology != w.topology {
				t.Errorf("Topology = %v, want %v", g.Topology, w.topology)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := glclass.Lookup("teapot"); err == nil {
		t.Fatal("expected error")
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	ex, err := glclass.Lookup("triangle")
	if err != nil {
		t.Fatal(err)
	}
	ex.Name = "changed"
	ex.ClearColor = glclass.ColorGreen
	ex.Shaders.Vertex = ""
	glclass.Exercises()[1].Animated = true

	again, err := glclass.Lookup("triangle")
	if err != nil {
		t.Fatalf("Lookup after mutation: %v", err)
	}
	if again.ClearColor != glclass.ColorBlack {
		t.Errorf("ClearColor = %v, want black", again.ClearColor)
	}
	if again.Shaders.Vertex == "" {
		t.Error("shader source shared with an earlier caller")
	}
	if again.Animated {
		t.Error("Animated changed through Exercises()")
	}
}

func TestFanGeometryScalesPixels(t *testing.T) {
	ex, err := glclass.Lookup("fan")
	if err != nil {
		t.Fatal(err)
	}
	g, err := ex.Geometry(glclass.Size{Width: 600, Height: 480})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Buffers[0]) != 6*5 {
		t.Fatalf("buffer holds %d floats, want 30", len(g.Buffers[0]))
	}
	if n := g.VertexCount(); n != 6 {
		t.Errorf("VertexCount = %d, want 6", n)
	}

	pos := g.Layout[0].Read(g.Buffers[0])
	// 60 px right of center on a 600 px wide surface.
	if !near(pos[1][0], 0.2, 1e-6) || pos[1][1] != 0 {
		t.Errorf("vertex 1 = %v, want [0.2 0]", pos[1])
	}
	// 120 px up on a 480 px tall surface.
	if !near(pos[5][1], 0.5, 1e-6) {
		t.Errorf("vertex 5 = %v, want y 0.5", pos[5])
	}

	color := g.Layout[1].Read(g.Buffers[0])
	if !near(color[2][0], 1, 1e-6) || !near(color[4][1], 1, 1e-6) {
		t.Errorf("colors = %v", color)
	}
}

func TestViewportExerciseQuadrants(t *testing.T) {
	ex, err := glclass.Lookup("viewport")
	if err != nil {
		t.Fatal(err)
	}
	got := ex.Viewports(glclass.Size{Width: 640, Height: 480})
	want := []glclass.Viewport{
		{X: 0, Y: 0, Width: 320, Height: 240},
		{X: 320, Y: 0, Width: 320, Height: 240},
		{X: 0, Y: 240, Width: 320, Height: 240},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d viewports, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("viewport %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBarycentricUniforms(t *testing.T) {
	ex, err := glclass.Lookup("barycentric")
	if err != nil {
		t.Fatal(err)
	}
	us := ex.Uniforms(glclass.Size{Width: 800, Height: 600})

	pos, ok := us.Lookup("uVertexPositions")
	if !ok || pos.Len() != 3 {
		t.Errorf("uVertexPositions = %+v", pos)
	}
	colors, ok := us.Lookup("uVertexColors")
	if !ok || colors.Kind != glclass.UniformVec3 || colors.Len() != 3 {
		t.Errorf("uVertexColors = %+v", colors)
	}
	if got := us.Vec2("uViewportSize", 0); got[0] != 800 || got[1] != 600 {
		t.Errorf("uViewportSize = %v", got)
	}
	if got := us.Vec3("uVertexColors", 2); got[2] != 1 {
		t.Errorf("third color = %v", got)
	}
}

func TestShadeVarying(t *testing.T) {
	tests := []struct {
		varying []float32
		want    glclass.Color
	}{
		{[]float32{0.25, 0.5}, glclass.Color{R: 0.25, G: 0.5, A: 1}},
		{[]float32{1, 0, 1}, glclass.Color{R: 1, B: 1, A: 1}},
		{[]float32{0, 1, 0, 0.5}, glclass.Color{G: 1, A: 0.5}},
	}
	for _, tt := range tests {
		if got := glclass.ShadeVarying(&glclass.Fragment{Varying: tt.varying}); got != tt.want {
			t.Errorf("ShadeVarying(%v) = %+v, want %+v", tt.varying, got, tt.want)
		}
	}
}
