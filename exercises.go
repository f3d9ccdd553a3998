package glclass

import (
	"slices"
)

// Vertex stage shared by the exercises that pass a per-vertex color through.
const colorVertexSource = `
#version 410 core
layout (location = 0) in vec4 aVertexPosition;
layout (location = 1) in vec4 aVertexColor;

out vec4 vColor;

void main() {
    gl_Position = aVertexPosition;
    vColor = aVertexColor;
}
`

const colorFragmentSource = `
#version 410 core
in vec4 vColor;

out vec4 fragColor;

void main() {
    fragColor = vColor;
}
`

var colorShaders = &ShaderSource{
	Name:     "vertex-color",
	Vertex:   colorVertexSource,
	Fragment: colorFragmentSource,
	Shade:    ShadeVarying,
}

// clearExercise fills the surface with a single color and draws nothing.
var clearExercise = &Exercise{
	Name:        "clear",
	Description: "clear the framebuffer to green",
	ClearColor:  ColorGreen,
}

var triangleExercise = &Exercise{
	Name:        "triangle",
	Description: "one red triangle from a position-only buffer",
	ClearColor:  ColorBlack,
	Shaders: &ShaderSource{
		Name: "solid-red",
		Vertex: `
#version 410 core
layout (location = 0) in vec4 aVertexPosition;

void main() {
    gl_Position = aVertexPosition;
}
`,
		Fragment: `
#version 410 core
out vec4 fragColor;

void main() {
    fragColor = vec4(1.0, 0.0, 0.0, 1.0);
}
`,
		Shade: ShadeConstant(ColorRed),
	},
	Geometry: func(Size) (*Geometry, error) {
		return &Geometry{
			Buffers: []VertexBuffer{{
				0.0, 0.5,   // top
				-0.5, -0.5, // bottom left
				0.5, -0.5,  // bottom right
			}},
			Layout:   Separate(2),
			Topology: Triangles,
			Count:    3,
		}, nil
	},
}

const (
	circleSegments = 32
	circleRadius   = 0.5
)

var circleExercise = &Exercise{
	Name:        "circle",
	Description: "a disc as a triangle fan with an interleaved position/color buffer",
	Animated:    true,
	ClearColor:  ColorBlue,
	Shaders: &ShaderSource{
		Name: "circle",
		Vertex: `
#version 410 core
layout (location = 0) in vec2 aVertexPosition;
layout (location = 1) in vec2 aVertexColor;

out vec2 color;

void main() {
    gl_Position = vec4(aVertexPosition, 0.0, 1.0);
    color = aVertexColor;
}
`,
		Fragment: `
#version 410 core
in vec2 color;

out vec4 fragColor;

void main() {
    fragColor = vec4(color, 0.0, 1.0);
}
`,
		Shade: ShadeVarying,
	},
	Geometry: func(Size) (*Geometry, error) {
		return Circle(circleSegments, circleRadius)
	},
}

var rectangleExercise = &Exercise{
	Name:        "rectangle",
	Description: "an indexed triangle strip quad with one color per corner",
	Animated:    true,
	ClearColor:  ColorBlack,
	Shaders:     colorShaders,
	Geometry: func(Size) (*Geometry, error) {
		return &Geometry{
			Buffers: []VertexBuffer{
				{
					-0.5, 0.5,  // top left
					0.5, 0.5,   // top right
					-0.5, -0.5, // bottom left
					0.5, -0.5,  // bottom right
				},
				{
					1, 0, 0, 1, // red
					0, 1, 0, 1, // green
					0, 0, 1, 1, // blue
					1, 1, 0, 1, // yellow
				},
			},
			Layout:   Separate(2, 4),
			Indices:  IndexBuffer{0, 1, 2, 3},
			Topology: TriangleStrip,
			Count:    4,
		}, nil
	},
}

// rgbTriangle is an RGB triangle drawn from separate position and color buffers.
func rgbTriangle(Size) (*Geometry, error) {
	return &Geometry{
		Buffers: []VertexBuffer{
			{
				0.0, 0.5,
				-0.5, -0.5,
				0.5, -0.5,
			},
			{
				1, 0, 0, 1,
				0, 1, 0, 1,
				0, 0, 1, 1,
			},
		},
		Layout:   Separate(2, 4),
		Indices:  IndexBuffer{0, 1, 2},
		Topology: Triangles,
		Count:    3,
	}, nil
}

var viewportExercise = &Exercise{
	Name:        "viewport",
	Description: "the same triangle drawn into three quadrants of the surface",
	ClearColor:  ColorBlack,
	Shaders:     colorShaders,
	Geometry:    rgbTriangle,
	Viewports: func(s Size) []Viewport {
		w, h := s.Width/2, s.Height/2
		return []Viewport{
			{X: 0, Y: 0, Width: w, Height: h},
			{X: w, Y: 0, Width: w, Height: h},
			{X: 0, Y: h, Width: w, Height: h},
		}
	},
}

// fanCell is the edge length, in pixels, of the grid the fan polygon is drawn on.
const fanCell = 60.0

var fanExercise = &Exercise{
	Name:        "fan",
	Description: "a six-vertex polygon in pixel units drawn as an indexed triangle fan",
	Animated:    true,
	ClearColor:  ColorBlack,
	Shaders:     colorShaders,
	Geometry: func(s Size) (*Geometry, error) {
		// x, y in pixels from the surface center, then r, g, b in thirds.
		data := VertexBuffer{
			0, 0, 2, 1, 0,
			fanCell, 0, 2, 1, 0,
			fanCell, -fanCell, 3, 0, 0,
			-fanCell, -fanCell, 3, 0, 0,
			-fanCell, 2 * fanCell, 0, 3, 0,
			0, 2 * fanCell, 0, 3, 0,
		}
		halfW, halfH := float32(s.Width)/2, float32(s.Height)/2
		for i := 0; i < len(data); i += 5 {
			data[i] /= halfW
			data[i+1] /= halfH
			data[i+2] /= 3
			data[i+3] /= 3
			data[i+4] /= 3
		}
		return &Geometry{
			Buffers:  []VertexBuffer{data},
			Layout:   Interleaved(2, 3),
			Indices:  IndexBuffer{0, 1, 2, 3, 4, 5},
			Topology: TriangleFan,
			Count:    6,
		}, nil
	},
}

var (
	barycentricPositions = []float32{
		0.0, 0.5,
		-0.5, -0.5,
		0.5, -0.5,
	}
	barycentricColors = []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
)

// shadeBarycentric is the CPU form of the barycentric fragment stage below.
func shadeBarycentric(f *Fragment) Color {
	size := f.Uniforms.Vec2("uViewportSize", 0)
	p := FragCoordToNDC(f.Coord, Size{Width: int(size[0]), Height: int(size[1])})
	w := Barycentric(p,
		f.Uniforms.Vec2("uVertexPositions", 0),
		f.Uniforms.Vec2("uVertexPositions", 1),
		f.Uniforms.Vec2("uVertexPositions", 2),
	)
	c := func(i int) Color {
		v := f.Uniforms.Vec3("uVertexColors", i)
		return Color{v[0], v[1], v[2], 1}
	}
	out := Blend(w, c(0), c(1), c(2))
	out.A = 1
	return out
}

var barycentricExercise = &Exercise{
	Name:        "barycentric",
	Description: "per-pixel barycentric color blending from uniform vertex data",
	Animated:    true,
	ClearColor:  ColorBlack,
	Shaders: &ShaderSource{
		Name: "barycentric",
		Vertex: `
#version 410 core
layout (location = 0) in vec4 aPosition;

void main() {
    gl_Position = aPosition;
}
`,
		Fragment: `
#version 410 core
uniform vec2 uVertexPositions[3];
uniform vec3 uVertexColors[3];
uniform vec2 uViewportSize;

out vec4 fragColor;

// Twice the unsigned area of triangle abc.
float area(vec2 a, vec2 b, vec2 c) {
    vec2 ab = b - a;
    vec2 ac = c - a;
    return abs(ab.x * ac.y - ab.y * ac.x);
}

void main() {
    vec2 p = (gl_FragCoord.xy / uViewportSize) * 2.0 - 1.0;
    vec2 A = uVertexPositions[0];
    vec2 B = uVertexPositions[1];
    vec2 C = uVertexPositions[2];

    float abc = area(A, B, C);
    float alpha = area(p, B, C) / abc;
    float beta = area(p, C, A) / abc;
    float gamma = area(p, A, B) / abc;

    vec3 color = alpha * uVertexColors[0] + beta * uVertexColors[1] + gamma * uVertexColors[2];
    fragColor = vec4(color, 1.0);
}
`,
		Shade: shadeBarycentric,
	},
	Geometry: func(Size) (*Geometry, error) {
		return &Geometry{
			Buffers:  []VertexBuffer{VertexBuffer(slices.Clone(barycentricPositions))},
			Layout:   Separate(2),
			Indices:  IndexBuffer{0, 1, 2},
			Topology: Triangles,
			Count:    3,
		}, nil
	},
	Uniforms: func(s Size) Uniforms {
		return Uniforms{
			{Name: "uVertexPositions", Kind: UniformVec2, Values: barycentricPositions},
			{Name: "uVertexColors", Kind: UniformVec3, Values: barycentricColors},
			{Name: "uViewportSize", Kind: UniformVec2, Values: []float32{float32(s.Width), float32(s.Height)}},
		}
	},
}
