package glclass

// Topology selects how consecutive vertices form triangles.
type Topology int

const (
	Triangles Topology = iota
	TriangleStrip
	TriangleFan
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	default:
		return "unknown"
	}
}

func (t Topology) valid() bool {
	return t >= Triangles && t <= TriangleFan
}

// Assemble groups vertex rows into triangles the way the GL primitive
// assembler does. Strip triangles keep a consistent winding by swapping the
// first two vertices of every odd triangle; fan triangles all share order[0].
func (t Topology) Assemble(order []int) [][3]int {
	var tris [][3]int
	switch t {
	case Triangles:
		for i := 0; i+2 < len(order); i += 3 {
			tris = append(tris, [3]int{order[i], order[i+1], order[i+2]})
		}
	case TriangleStrip:
		for i := 0; i+2 < len(order); i++ {
			if i%2 == 0 {
				tris = append(tris, [3]int{order[i], order[i+1], order[i+2]})
			} else {
				tris = append(tris, [3]int{order[i+1], order[i], order[i+2]})
			}
		}
	case TriangleFan:
		for i := 1; i+1 < len(order); i++ {
			tris = append(tris, [3]int{order[0], order[i], order[i+1]})
		}
	}
	return tris
}
