package glclass

import (
	"fmt"
	"strings"
)

// Exercise describes one self-contained rendering demo: what to clear with,
// which program to build, what geometry to upload and where to draw it.
type Exercise struct {
	Name        string
	Description string

	// Animated exercises render every frame. Static ones render once.
	Animated   bool
	ClearColor Color

	// Shaders is nil for exercises that only clear.
	Shaders *ShaderSource

	// Geometry builds the vertex data once, at setup, for the initial surface size.
	Geometry func(s Size) (*Geometry, error)

	// Uniforms returns the uniform values for a frame. Optional.
	Uniforms func(s Size) Uniforms

	// Viewports lists the regions drawn each frame, one draw call each.
	// Nil means a single draw covering the whole surface.
	Viewports func(s Size) []Viewport
}

// Draws reports whether the exercise issues draw calls.
func (e *Exercise) Draws() bool {
	return e.Shaders != nil && e.Geometry != nil
}

// viewports returns the regions to draw into for a frame.
func (e *Exercise) viewports(s Size) []Viewport {
	if e.Viewports == nil {
		return []Viewport{{}}
	}
	return e.Viewports(s)
}

var registry = []*Exercise{
	clearExercise,
	triangleExercise,
	circleExercise,
	rectangleExercise,
	viewportExercise,
	fanExercise,
	barycentricExercise,
}

// clone returns a copy of e that shares nothing mutable with the registry.
func (e *Exercise) clone() *Exercise {
	c := *e
	if e.Shaders != nil {
		shaders := *e.Shaders
		c.Shaders = &shaders
	}
	return &c
}

// Exercises returns copies of all built-in exercises in presentation order.
func Exercises() []*Exercise {
	out := make([]*Exercise, len(registry))
	for i, e := range registry {
		out[i] = e.clone()
	}
	return out
}

// Names returns the names of all built-in exercises.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}

// Lookup returns a copy of the exercise called name.
func Lookup(name string) (*Exercise, error) {
	for _, e := range registry {
		if e.Name == name {
			return e.clone(), nil
		}
	}
	return nil, fmt.Errorf("unknown exercise %q (have %s)", name, strings.Join(Names(), ", "))
}
