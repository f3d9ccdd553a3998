package glclass_test

import (
	"encoding/binary"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/go-theft-auto/glclass"
)

func TestInterleavedLayoutReadsAtStride(t *testing.T) {
	buf := glclass.VertexBuffer{
		0, 0, 1, 0.5,
		1, 2, 3, 4,
		5, 6, 7, 8,
	}
	layout := glclass.Interleaved(2, 2)

	pos, color := layout[0], layout[1]
	if pos.Offset != 0 || pos.Stride != 16 {
		t.Errorf("position offset/stride = %d/%d, want 0/16", pos.Offset, pos.Stride)
	}
	if color.Offset != 8 || color.Stride != 16 {
		t.Errorf("color offset/stride = %d/%d, want 8/16", color.Offset, color.Stride)
	}

	wantPos := [][]float32{{0, 0}, {1, 2}, {5, 6}}
	wantColor := [][]float32{{1, 0.5}, {3, 4}, {7, 8}}
	for i, got := range pos.Read(buf) {
		if !slices.Equal(got, wantPos[i]) {
			t.Errorf("position %d = %v, want %v", i, got, wantPos[i])
		}
	}
	for i, got := range color.Read(buf) {
		if !slices.Equal(got, wantColor[i]) {
			t.Errorf("color %d = %v, want %v", i, got, wantColor[i])
		}
	}
}

func TestInterleavedOddStride(t *testing.T) {
	// Five floats per vertex: xy + rgb.
	buf := glclass.VertexBuffer{
		1, 2, 10, 11, 12,
		3, 4, 13, 14, 15,
	}
	layout := glclass.Interleaved(2, 3)
	if got := layout[1].Read(buf); !slices.Equal(got[1], []float32{13, 14, 15}) {
		t.Errorf("second color = %v", got[1])
	}
	if n := layout[0].Count(buf); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestSeparateLayout(t *testing.T) {
	layout := glclass.Separate(2, 4)
	if len(layout) != 2 {
		t.Fatalf("len = %d", len(layout))
	}
	for i, a := range layout {
		if a.Slot != i || a.Buffer != i || a.Offset != 0 || a.Stride != 0 {
			t.Errorf("attribute %d = %+v", i, a)
		}
	}
	if s := layout[1].EffectiveStride(); s != 16 {
		t.Errorf("color stride = %d, want 16", s)
	}
}

func TestVertexBufferBytes(t *testing.T) {
	buf := glclass.VertexBuffer{0.5, -1, 3.25}
	b := buf.Bytes() // must not panic on any host byte order
	if len(b) != 12 {
		t.Fatalf("len = %d, want 12", len(b))
	}
	for i, want := range buf {
		got := math.Float32frombits(binary.NativeEndian.Uint32(b[i*4:]))
		if got != want {
			t.Errorf("value %d = %v, want %v", i, got, want)
		}
	}
}

func TestAttributeRejectsNegativeLayout(t *testing.T) {
	buf := glclass.VertexBuffer{1, 2, 3, 4, 5, 6, 7, 8}
	tests := []struct {
		name string
		attr glclass.Attribute
	}{
		{"negative stride", glclass.Attribute{Components: 2, Stride: -8}},
		{"negative offset", glclass.Attribute{Components: 2, Offset: -4}},
		{"both negative", glclass.Attribute{Components: 2, Offset: -4, Stride: -8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := tt.attr.Count(buf); n != 0 {
				t.Errorf("Count = %d, want 0", n)
			}
			if got := tt.attr.Read(buf); len(got) != 0 {
				t.Errorf("Read = %v, want empty", got)
			}
			if got := tt.attr.At(buf, 1); got != nil {
				t.Errorf("At = %v, want nil", got)
			}
		})
	}
}

func validGeometry() *glclass.Geometry {
	return &glclass.Geometry{
		Buffers: []glclass.VertexBuffer{
			{-0.5, 0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5},
			{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1, 1, 1, 0, 1},
		},
		Layout:   glclass.Separate(2, 4),
		Indices:  glclass.IndexBuffer{0, 1, 2, 3},
		Topology: glclass.TriangleStrip,
		Count:    4,
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *glclass.Geometry)
		wantErr string
	}{
		{"valid", func(*glclass.Geometry) {}, ""},
		{"no attributes", func(g *glclass.Geometry) { g.Layout = nil }, "no attributes"},
		{"offset past end", func(g *glclass.Geometry) { g.Layout[0].Offset = 32 }, "exceeds buffer"},
		{"five components", func(g *glclass.Geometry) { g.Layout[1].Components = 5 }, "components"},
		{"missing buffer", func(g *glclass.Geometry) { g.Layout[1].Buffer = 2 }, "out of range"},
		{"duplicate slot", func(g *glclass.Geometry) { g.Layout[1].Slot = 0 }, "bound twice"},
		{"unaligned offset", func(g *glclass.Geometry) { g.Layout[0].Offset = 2 }, "aligned"},
		{"index out of range", func(g *glclass.Geometry) { g.Indices[3] = 4 }, "references vertex"},
		{"count exceeds indices", func(g *glclass.Geometry) { g.Count = 5 }, "exceeds 4 indices"},
		{"count exceeds vertices", func(g *glclass.Geometry) { g.Indices = nil; g.Count = 5 }, "exceeds 4 vertices"},
		{"zero count", func(g *glclass.Geometry) { g.Count = 0 }, "draw count"},
		{"bad topology", func(g *glclass.Geometry) { g.Topology = 7 }, "topology"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGeometry()
			tt.mutate(g)
			err := g.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGeometryOrder(t *testing.T) {
	g := validGeometry()
	g.Indices = glclass.IndexBuffer{3, 2, 1, 0}
	if got := g.Order(); !slices.Equal(got, []int{3, 2, 1, 0}) {
		t.Errorf("indexed order = %v", got)
	}
	g.Indices = nil
	g.Count = 3
	if got := g.Order(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("array order = %v", got)
	}
}
