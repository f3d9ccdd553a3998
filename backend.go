package glclass

// Program is a backend handle to a linked shader program.
type Program uint32

// Mesh is a backend handle to uploaded geometry.
type Mesh uint32

// DrawCall is one draw of an uploaded mesh with a linked program.
type DrawCall struct {
	Program  Program
	Mesh     Mesh
	Uniforms Uniforms
}

// Backend issues graphics commands against a context bound to a surface.
type Backend interface {
	// CreateProgram compiles both stages and links them. It returns a
	// *CompileError or *LinkError carrying the driver's diagnostic log.
	CreateProgram(src *ShaderSource) (Program, error)

	// Upload validates g and copies it into backend buffers.
	Upload(g *Geometry) (Mesh, error)

	Clear(c Color)
	SetViewport(v Viewport)
	Draw(call DrawCall) error
}

// Surface is the drawable a Backend renders into.
type Surface interface {
	Size() Size

	// Present shows the rendered frame and processes pending host events.
	Present() error

	// Wait blocks until the host has events to process. Static exercises
	// call it instead of rendering again.
	Wait()

	ShouldClose() bool
}
