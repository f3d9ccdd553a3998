package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glclass"
)

// waitTimeout bounds Wait so a cancelled run is noticed without host events.
const waitTimeout = 0.1 // seconds

// WindowConfig configures the window and its GL context.
type WindowConfig struct {
	Width, Height int
	Title         string
	VSync         bool
	Hidden        bool // create the window invisible, for offscreen use
}

// Window is a GLFW window with a current OpenGL 4.1 core context.
// GLFW requires every call on it to come from the main thread; lock it with
// runtime.LockOSThread in an init function.
type Window struct {
	window *glfw.Window
}

// NewWindow initializes GLFW, opens a window and makes its context current.
// Any failure wraps glclass.ErrContextUnavailable.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", glclass.ErrContextUnavailable, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", glclass.ErrContextUnavailable, err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl init: %v", glclass.ErrContextUnavailable, err)
	}

	glclass.Logger().Info("gl context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			glclass.Logger().Warn("framebuffer is empty", "width", width, "height", height)
			return
		}
		glclass.Logger().Debug("framebuffer resized", "width", width, "height", height)
	})

	return &Window{window: window}, nil
}

// Size returns the framebuffer size in pixels, which differs from the window
// size on high-DPI displays.
func (w *Window) Size() glclass.Size {
	width, height := w.window.GetFramebufferSize()
	return glclass.Size{Width: width, Height: height}
}

// Present swaps buffers and polls events.
func (w *Window) Present() error {
	w.window.SwapBuffers()
	glfw.PollEvents()
	return nil
}

// Wait blocks until an event arrives or a short timeout passes.
func (w *Window) Wait() {
	glfw.WaitEventsTimeout(waitTimeout)
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}
