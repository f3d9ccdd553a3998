package opengl_test

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/go-theft-auto/glclass"
	"github.com/go-theft-auto/glclass/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

// Tests run on their own goroutines; GL calls are funneled to the main thread.
var mainfunc = make(chan func())

func onMain(f func()) {
	done := make(chan struct{})
	mainfunc <- func() {
		defer close(done)
		f()
	}
	<-done
}

var (
	window   *opengl.Window
	setupErr error
)

func TestMain(m *testing.M) {
	window, setupErr = opengl.NewWindow(opengl.WindowConfig{
		Width:  64,
		Height: 64,
		Title:  "glclass test",
		Hidden: true,
	})

	code := make(chan int)
	go func() {
		code <- m.Run()
	}()
	for {
		select {
		case f := <-mainfunc:
			f()
		case c := <-code:
			if window != nil {
				window.Close()
			}
			os.Exit(c)
		}
	}
}

func requireContext(t *testing.T) {
	t.Helper()
	if setupErr != nil {
		if errors.Is(setupErr, glclass.ErrContextUnavailable) {
			t.Skipf("no OpenGL context: %v", setupErr)
		}
		t.Fatal(setupErr)
	}
}

const testVertex = `
#version 410 core
layout (location = 0) in vec2 aPosition;
out vec3 vColor;
void main() {
    gl_Position = vec4(aPosition, 0.0, 1.0);
    vColor = vec3(1.0, 0.0, 0.0);
}
`

const testFragment = `
#version 410 core
in vec3 vColor;
out vec4 fragColor;
void main() {
    fragColor = vec4(vColor, 1.0);
}
`

func TestCreateProgram(t *testing.T) {
	requireContext(t)

	tests := []struct {
		name      string
		vertex    string
		fragment  string
		wantStage glclass.Stage
		wantLink  bool
		wantOK    bool
	}{
		{name: "valid", vertex: testVertex, fragment: testFragment, wantOK: true},
		{
			name:      "vertex syntax error",
			vertex:    strings.Replace(testVertex, "vColor = vec3(1.0, 0.0, 0.0);", "vColor = vec3(1.0, 0.0, 0.0)", 1),
			fragment:  testFragment,
			wantStage: glclass.StageVertex,
		},
		{
			name:      "fragment syntax error",
			vertex:    testVertex,
			fragment:  strings.Replace(testFragment, "fragColor =", "fragColor = = ", 1),
			wantStage: glclass.StageFragment,
		},
		{
			name:     "mismatched varying",
			vertex:   testVertex,
			fragment: strings.ReplaceAll(testFragment, "vColor", "vTint"),
			wantLink: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			onMain(func() {
				r := opengl.NewRenderer()
				defer r.Delete()
				_, err = r.CreateProgram(&glclass.ShaderSource{Name: tt.name, Vertex: tt.vertex, Fragment: tt.fragment})
			})

			switch {
			case tt.wantOK:
				if err != nil {
					t.Fatalf("CreateProgram: %v", err)
				}
			case tt.wantLink:
				var linkErr *glclass.LinkError
				if !errors.As(err, &linkErr) {
					t.Fatalf("err = %v, want *LinkError", err)
				}
				if linkErr.Log == "" {
					t.Error("empty link log")
				}
			default:
				var compileErr *glclass.CompileError
				if !errors.As(err, &compileErr) {
					t.Fatalf("err = %v, want *CompileError", err)
				}
				if compileErr.Stage != tt.wantStage {
					t.Errorf("Stage = %v, want %v", compileErr.Stage, tt.wantStage)
				}
				if compileErr.Log == "" {
					t.Error("empty compile log")
				}
			}
		})
	}
}

func TestRectangleCorners(t *testing.T) {
	requireContext(t)

	ex, err := glclass.Lookup("rectangle")
	if err != nil {
		t.Fatal(err)
	}

	var size glclass.Size
	var corners [4][4]uint8
	onMain(func() {
		r := opengl.NewRenderer()
		defer r.Delete()

		size = window.Size()
		runner := glclass.NewRunner(r, ex)
		if err = runner.Setup(size); err != nil {
			return
		}
		if err = runner.RenderFrame(size); err != nil {
			return
		}
		// Just inside each corner of the quad, which spans the middle half.
		lo, hiX, hiY := size.Width/4+1, size.Width*3/4-2, size.Height*3/4-2
		loY := size.Height/4 + 1
		corners = [4][4]uint8{
			r.ReadPixel(lo, hiY),  // top left
			r.ReadPixel(hiX, hiY), // top right
			r.ReadPixel(lo, loY),  // bottom left
			r.ReadPixel(hiX, loY), // bottom right
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	want := [4][3]uint8{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0}}
	for i, px := range corners {
		for c := 0; c < 3; c++ {
			d := int(px[c]) - int(want[i][c])
			if d < -40 || d > 40 {
				t.Errorf("corner %d = %v, want about %v (surface %+v)", i, px, want[i], size)
				break
			}
		}
	}
}
