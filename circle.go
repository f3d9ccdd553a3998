package glclass

import (
	"fmt"
	"math"
)

// Circle approximates a disc of the given radius centered at the origin with
// a triangle fan of segments slices. The buffer interleaves a 2D position and
// a two-channel color per vertex and holds segments+2 vertices: the center,
// then the ring from angle 0 to 2*pi inclusive, so the last ring vertex closes
// the loop on the first.
func Circle(segments int, radius float32) (*Geometry, error) {
	if segments < 3 {
		return nil, fmt.Errorf("circle needs at least 3 segments, got %d", segments)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("circle radius %v", radius)
	}

	data := make(VertexBuffer, 0, (segments+2)*4)
	data = append(data, 0, 0, 1.0, 0.5)
	for i := 0; i <= segments; i++ {
		// The closing vertex reuses angle 0 so it is bit-identical to the first.
		theta := 2 * math.Pi * float64(i%segments) / float64(segments)
		cos, sin := math.Cos(theta), math.Sin(theta)
		data = append(data,
			radius*float32(cos), radius*float32(sin),
			float32((cos+1)*0.5), float32((sin+1)*0.5),
		)
	}

	return &Geometry{
		Buffers:  []VertexBuffer{data},
		Layout:   Interleaved(2, 2),
		Topology: TriangleFan,
		Count:    segments + 2,
	}, nil
}
