package glclass

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/mobile/exp/f32"
)

// floatSize is the size in bytes of one float32 attribute component.
const floatSize = 4

// VertexBuffer is a flat sequence of float32 attribute values.
type VertexBuffer []float32

// hostOrder is the byte order GL expects for client data. f32.Bytes only
// accepts binary.LittleEndian or binary.BigEndian.
var hostOrder = func() binary.ByteOrder {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

// Bytes packs the buffer in host byte order, ready for upload.
func (b VertexBuffer) Bytes() []byte {
	return f32.Bytes(hostOrder, b...)
}

// IndexBuffer lists vertex rows in draw order.
type IndexBuffer []uint16

// Attribute describes how one vertex input slot reads a VertexBuffer.
// Offset and Stride are in bytes. A zero Stride means tightly packed.
type Attribute struct {
	Slot       int
	Buffer     int
	Components int
	Offset     int
	Stride     int
}

// EffectiveStride returns the byte distance between consecutive vertices.
func (a Attribute) EffectiveStride() int {
	if a.Stride == 0 {
		return a.Components * floatSize
	}
	return a.Stride
}

// Count returns the number of whole vertices the attribute can read from buf.
func (a Attribute) Count(buf VertexBuffer) int {
	size := len(buf) * floatSize
	need := a.Offset + a.Components*floatSize
	if a.Components <= 0 || a.Offset < 0 || a.Stride < 0 || size < need {
		return 0
	}
	return (size-need)/a.EffectiveStride() + 1
}

// Read returns the attribute tuples stored in buf, taken at byte positions
// Offset, Offset+Stride, Offset+2*Stride and so on.
func (a Attribute) Read(buf VertexBuffer) [][]float32 {
	n := a.Count(buf)
	out := make([][]float32, n)
	for i := range n {
		start := (a.Offset + i*a.EffectiveStride()) / floatSize
		out[i] = slices.Clone(buf[start : start+a.Components])
	}
	return out
}

// At returns the tuple for vertex i, or nil for a negative offset or stride.
func (a Attribute) At(buf VertexBuffer, i int) []float32 {
	if a.Offset < 0 || a.Stride < 0 {
		return nil
	}
	start := (a.Offset + i*a.EffectiveStride()) / floatSize
	return buf[start : start+a.Components]
}

// AttributeLayout maps vertex input slots to buffer regions.
type AttributeLayout []Attribute

// Slot returns the attribute bound to slot, if any.
func (l AttributeLayout) Slot(slot int) (Attribute, bool) {
	for _, a := range l {
		if a.Slot == slot {
			return a, true
		}
	}
	return Attribute{}, false
}

// Interleaved describes a single buffer holding all attributes of a vertex
// back to back. Slots are numbered in argument order.
func Interleaved(components ...int) AttributeLayout {
	stride := 0
	for _, c := range components {
		stride += c * floatSize
	}
	layout := make(AttributeLayout, len(components))
	offset := 0
	for i, c := range components {
		layout[i] = Attribute{Slot: i, Buffer: 0, Components: c, Offset: offset, Stride: stride}
		offset += c * floatSize
	}
	return layout
}

// Separate describes one tightly packed buffer per attribute. Slot i reads
// buffer i.
func Separate(components ...int) AttributeLayout {
	layout := make(AttributeLayout, len(components))
	for i, c := range components {
		layout[i] = Attribute{Slot: i, Buffer: i, Components: c}
	}
	return layout
}

// Geometry is the static vertex data of one exercise.
type Geometry struct {
	Buffers  []VertexBuffer
	Layout   AttributeLayout
	Indices  IndexBuffer // nil draws vertices in storage order
	Topology Topology
	Count    int // vertices or indices consumed by one draw
}

// VertexCount returns the number of vertices every attribute can supply.
func (g *Geometry) VertexCount() int {
	n := -1
	for _, a := range g.Layout {
		if a.Buffer < 0 || a.Buffer >= len(g.Buffers) {
			return 0
		}
		c := a.Count(g.Buffers[a.Buffer])
		if n < 0 || c < n {
			n = c
		}
	}
	return max(n, 0)
}

// Order returns the vertex rows in draw order for one draw of Count elements.
func (g *Geometry) Order() []int {
	order := make([]int, g.Count)
	for i := range order {
		if g.Indices != nil {
			order[i] = int(g.Indices[i])
		} else {
			order[i] = i
		}
	}
	return order
}

// Validate checks that the layout stays inside its buffers and that the draw
// count and indices reference existing vertices.
func (g *Geometry) Validate() error {
	if len(g.Layout) == 0 {
		return errors.New("geometry has no attributes")
	}
	if !g.Topology.valid() {
		return fmt.Errorf("unknown topology %d", int(g.Topology))
	}

	seen := make(map[int]bool, len(g.Layout))
	for _, a := range g.Layout {
		if seen[a.Slot] {
			return fmt.Errorf("slot %d bound twice", a.Slot)
		}
		seen[a.Slot] = true

		if a.Buffer < 0 || a.Buffer >= len(g.Buffers) {
			return fmt.Errorf("slot %d: buffer %d out of range", a.Slot, a.Buffer)
		}
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("slot %d: %d components, want 1..4", a.Slot, a.Components)
		}
		if a.Offset < 0 || a.Stride < 0 || a.Offset%floatSize != 0 || a.Stride%floatSize != 0 {
			return fmt.Errorf("slot %d: offset %d/stride %d not float aligned", a.Slot, a.Offset, a.Stride)
		}
		size := len(g.Buffers[a.Buffer]) * floatSize
		if a.Offset+a.Components*floatSize > size {
			return fmt.Errorf("slot %d: offset %d exceeds buffer of %d bytes", a.Slot, a.Offset, size)
		}
	}

	vertices := g.VertexCount()
	if g.Count <= 0 {
		return fmt.Errorf("draw count %d", g.Count)
	}
	if g.Indices == nil {
		if g.Count > vertices {
			return fmt.Errorf("draw count %d exceeds %d vertices", g.Count, vertices)
		}
		return nil
	}
	if g.Count > len(g.Indices) {
		return fmt.Errorf("draw count %d exceeds %d indices", g.Count, len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= vertices {
			return fmt.Errorf("index %d references vertex %d of %d", i, idx, vertices)
		}
	}
	return nil
}
