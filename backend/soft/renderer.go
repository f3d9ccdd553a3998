// Package soft renders glclass exercises on the CPU into an in-memory
// framebuffer. It is both the Backend and the Surface, so exercises can run
// headless and be inspected pixel by pixel or saved as images.
package soft

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/go-theft-auto/glclass"
)

// program is a linked software program.
type program struct {
	name  string
	shade glclass.FragmentFunc
}

// Renderer is a software glclass.Backend and glclass.Surface.
type Renderer struct {
	fb       *image.RGBA
	viewport glclass.Viewport

	programs []*program
	meshes   []*glclass.Geometry

	presents int
	closed   bool
}

// New creates a renderer with a framebuffer of the given size.
func New(size glclass.Size) (*Renderer, error) {
	if size.Empty() {
		return nil, fmt.Errorf("%w: framebuffer %dx%d", glclass.ErrContextUnavailable, size.Width, size.Height)
	}
	return &Renderer{
		fb:       image.NewRGBA(image.Rect(0, 0, size.Width, size.Height)),
		viewport: glclass.Viewport{Width: size.Width, Height: size.Height},
	}, nil
}

// CreateProgram runs both stages through the GLSL front end and links them.
// Handles start at 1.
func (r *Renderer) CreateProgram(src *glclass.ShaderSource) (glclass.Program, error) {
	vs, err := compile(glclass.StageVertex, src.Vertex)
	if err != nil {
		return 0, err
	}
	fs, err := compile(glclass.StageFragment, src.Fragment)
	if err != nil {
		return 0, err
	}
	if err := link(vs, fs); err != nil {
		return 0, err
	}
	if src.Shade == nil {
		return 0, &glclass.LinkError{Log: fmt.Sprintf("ERROR: program %q has no software fragment stage", src.Name)}
	}

	r.programs = append(r.programs, &program{name: src.Name, shade: src.Shade})
	return glclass.Program(len(r.programs)), nil
}

// Upload validates g and keeps a private copy.
func (r *Renderer) Upload(g *glclass.Geometry) (glclass.Mesh, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("invalid geometry: %w", err)
	}
	if _, ok := g.Layout.Slot(0); !ok {
		return 0, errors.New("invalid geometry: no position attribute in slot 0")
	}

	cp := *g
	cp.Buffers = make([]glclass.VertexBuffer, len(g.Buffers))
	for i, b := range g.Buffers {
		cp.Buffers[i] = slices.Clone(b)
	}
	cp.Layout = slices.Clone(g.Layout)
	cp.Indices = slices.Clone(g.Indices)

	r.meshes = append(r.meshes, &cp)
	return glclass.Mesh(len(r.meshes)), nil
}

// Clear fills the whole framebuffer, like glClear without a scissor box.
func (r *Renderer) Clear(c glclass.Color) {
	px := rgba(c)
	b := r.fb.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r.fb.SetRGBA(x, y, px)
		}
	}
}

// SetViewport sets the NDC to window transform for later draws.
func (r *Renderer) SetViewport(v glclass.Viewport) {
	r.viewport = v
}

// Draw rasterizes the mesh with the program's fragment stage.
func (r *Renderer) Draw(call glclass.DrawCall) error {
	if call.Program == 0 || int(call.Program) > len(r.programs) {
		return fmt.Errorf("unknown program %d", call.Program)
	}
	if call.Mesh == 0 || int(call.Mesh) > len(r.meshes) {
		return fmt.Errorf("unknown mesh %d", call.Mesh)
	}
	p := r.programs[call.Program-1]
	g := r.meshes[call.Mesh-1]

	r.drawMesh(g, p.shade, call.Uniforms)
	return nil
}

// Size returns the framebuffer size.
func (r *Renderer) Size() glclass.Size {
	b := r.fb.Bounds()
	return glclass.Size{Width: b.Dx(), Height: b.Dy()}
}

// Present counts a presented frame. The framebuffer is not cleared.
func (r *Renderer) Present() error {
	r.presents++
	return nil
}

// Presents returns how many frames have been presented.
func (r *Renderer) Presents() int {
	return r.presents
}

// Wait closes the surface. Nothing can arrive while a headless surface
// idles, so a static exercise ends after its single frame.
func (r *Renderer) Wait() {
	r.closed = true
}

// ShouldClose reports whether Close was called.
func (r *Renderer) ShouldClose() bool {
	return r.closed
}

// Close makes ShouldClose report true.
func (r *Renderer) Close() {
	r.closed = true
}

// Image returns the framebuffer. Row 0 is the top of the picture.
func (r *Renderer) Image() *image.RGBA {
	return r.fb
}

// Pixel returns the color at window coordinates x, y (origin bottom-left).
func (r *Renderer) Pixel(x, y int) color.RGBA {
	return r.fb.RGBAAt(x, r.fb.Bounds().Dy()-1-y)
}

// Snapshot writes the framebuffer to path. The format follows the
// extension: .png or .bmp.
func (r *Renderer) Snapshot(path string) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".bmp" {
		return fmt.Errorf("snapshot %s: unsupported format %q", path, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("snapshot: %w", cerr)
		}
	}()

	if ext == ".bmp" {
		err = bmp.Encode(f, r.fb)
	} else {
		err = png.Encode(f, r.fb)
	}
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}

func rgba(c glclass.Color) color.RGBA {
	r, g, b, a := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
