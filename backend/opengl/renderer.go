// Package opengl provides an OpenGL 4.1 core backend and a GLFW window
// surface for glclass exercises.
package opengl

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/glclass"
)

// program is a linked GL program and its uniform location cache.
type program struct {
	id   uint32
	locs map[string]int32
}

// mesh is a vertex array with the buffers it references.
type mesh struct {
	vao     uint32
	vbos    []uint32
	ebo     uint32
	mode    uint32
	count   int32
	indexed bool
}

// Renderer implements glclass.Backend with OpenGL. It must be created and
// used on the thread that owns the current context.
type Renderer struct {
	programs map[glclass.Program]*program
	meshes   map[glclass.Mesh]*mesh
}

// NewRenderer creates a renderer for the current GL context.
func NewRenderer() *Renderer {
	return &Renderer{
		programs: make(map[glclass.Program]*program),
		meshes:   make(map[glclass.Mesh]*mesh),
	}
}

// CreateProgram compiles and links src.
func (r *Renderer) CreateProgram(src *glclass.ShaderSource) (glclass.Program, error) {
	id, err := createShaderProgram(src.Vertex, src.Fragment)
	if err != nil {
		return 0, err
	}
	r.programs[glclass.Program(id)] = &program{id: id, locs: make(map[string]int32)}
	return glclass.Program(id), nil
}

// Upload copies g into a vertex array object with one VBO per buffer and an
// optional element buffer. The data is static.
func (r *Renderer) Upload(g *glclass.Geometry) (glclass.Mesh, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("invalid geometry: %w", err)
	}

	m := &mesh{
		mode:    topologyMode(g.Topology),
		count:   int32(g.Count),
		indexed: g.Indices != nil,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	m.vbos = make([]uint32, len(g.Buffers))
	gl.GenBuffers(int32(len(m.vbos)), &m.vbos[0])
	for i, buf := range g.Buffers {
		data := buf.Bytes()
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}

	for _, a := range g.Layout {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[a.Buffer])
		gl.VertexAttribPointerWithOffset(uint32(a.Slot), int32(a.Components), gl.FLOAT, false, int32(a.Stride), uintptr(a.Offset))
		gl.EnableVertexAttribArray(uint32(a.Slot))
	}

	// The element buffer binding is recorded in the VAO.
	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*2, gl.Ptr(g.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.meshes[glclass.Mesh(m.vao)] = m
	return glclass.Mesh(m.vao), nil
}

// Clear fills the color buffer.
func (r *Renderer) Clear(c glclass.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetViewport sets the GL viewport.
func (r *Renderer) SetViewport(v glclass.Viewport) {
	gl.Viewport(int32(v.X), int32(v.Y), int32(v.Width), int32(v.Height))
}

// Draw binds the program and mesh, sets uniforms and issues one draw.
func (r *Renderer) Draw(call glclass.DrawCall) error {
	p, ok := r.programs[call.Program]
	if !ok {
		return fmt.Errorf("unknown program %d", call.Program)
	}
	m, ok := r.meshes[call.Mesh]
	if !ok {
		return fmt.Errorf("unknown mesh %d", call.Mesh)
	}

	gl.UseProgram(p.id)
	for _, u := range call.Uniforms {
		if len(u.Values) == 0 {
			continue
		}
		loc := p.location(u.Name)
		if loc < 0 {
			// Unused uniforms are optimized out by the driver.
			continue
		}
		switch u.Kind {
		case glclass.UniformVec2:
			gl.Uniform2fv(loc, int32(u.Len()), &u.Values[0])
		case glclass.UniformVec3:
			gl.Uniform3fv(loc, int32(u.Len()), &u.Values[0])
		}
	}

	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElementsWithOffset(m.mode, m.count, gl.UNSIGNED_SHORT, 0)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
	gl.BindVertexArray(0)

	return nil
}

// ReadPixel returns the color buffer value at window coordinates x, y.
func (r *Renderer) ReadPixel(x, y int) [4]uint8 {
	var px [4]uint8
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

// ReadImage copies the bottom-left size.Width x size.Height region of the
// color buffer into an image with row 0 at the top.
func (r *Renderer) ReadImage(size glclass.Size) *image.RGBA {
	pixels := make([]byte, size.Width*size.Height*4)
	gl.ReadPixels(0, 0, int32(size.Width), int32(size.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	rowLen := size.Width * 4
	for y := 0; y < size.Height; y++ {
		src := (size.Height - 1 - y) * rowLen
		copy(img.Pix[y*img.Stride:], pixels[src:src+rowLen])
	}
	return img
}

// Delete releases all GL objects created by the renderer.
func (r *Renderer) Delete() {
	for h, m := range r.meshes {
		if m.ebo != 0 {
			gl.DeleteBuffers(1, &m.ebo)
		}
		gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
		gl.DeleteVertexArrays(1, &m.vao)
		delete(r.meshes, h)
	}
	for h, p := range r.programs {
		gl.DeleteProgram(p.id)
		delete(r.programs, h)
	}
}

func (p *program) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locs[name] = loc
	return loc
}

func topologyMode(t glclass.Topology) uint32 {
	switch t {
	case glclass.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case glclass.TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

// createShaderProgram compiles and links a shader program. Shader objects
// are deleted whether or not the program links.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(glclass.StageVertex, vertexSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(glclass.StageFragment, fragmentSource)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &glclass.LinkError{Log: diagnostic(log)}
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return program, nil
}

func compileShader(stage glclass.Stage, source string) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == glclass.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, &glclass.CompileError{Stage: stage, Log: diagnostic(log)}
	}

	return shader, nil
}

// diagnostic trims a driver info log. Some drivers report failure with an
// empty log, which would leave the user with nothing to act on.
func diagnostic(log []byte) string {
	s := strings.TrimSpace(strings.TrimRight(string(log), "\x00"))
	if s == "" {
		return "driver returned no diagnostic"
	}
	return s
}
