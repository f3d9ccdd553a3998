package glclass

import (
	"golang.org/x/image/math/f32"
)

// ShaderSource is the vertex and fragment stage text of one program.
// Sources are GLSL 4.10 core. Shade is the fragment stage as Go code, used by
// backends that rasterize on the CPU.
type ShaderSource struct {
	Name     string
	Vertex   string
	Fragment string
	Shade    FragmentFunc
}

// Fragment is the input of a software fragment stage.
type Fragment struct {
	Coord    f32.Vec2  // window coordinates of the pixel center, like gl_FragCoord.xy
	Varying  []float32 // slot 1 attribute interpolated across the triangle
	Uniforms Uniforms
}

// FragmentFunc computes the color of one fragment.
type FragmentFunc func(f *Fragment) Color

// ShadeVarying outputs the interpolated slot 1 attribute as color. Two
// components fill red and green, three fill RGB; alpha defaults to 1.
func ShadeVarying(f *Fragment) Color {
	c := Color{A: 1}
	v := f.Varying
	if len(v) > 0 {
		c.R = v[0]
	}
	if len(v) > 1 {
		c.G = v[1]
	}
	if len(v) > 2 {
		c.B = v[2]
	}
	if len(v) > 3 {
		c.A = v[3]
	}
	return c
}

// ShadeConstant returns a fragment stage that paints every pixel c.
func ShadeConstant(c Color) FragmentFunc {
	return func(*Fragment) Color { return c }
}

// UniformKind is the GLSL type of a uniform element.
type UniformKind int

const (
	UniformVec2 UniformKind = iota
	UniformVec3
)

// Components returns the float count of one element.
func (k UniformKind) Components() int {
	if k == UniformVec3 {
		return 3
	}
	return 2
}

// Uniform is a named uniform value. Arrays hold several elements back to back.
type Uniform struct {
	Name   string
	Kind   UniformKind
	Values []float32
}

// Len returns the number of elements held in Values.
func (u Uniform) Len() int {
	return len(u.Values) / u.Kind.Components()
}

// Uniforms is the set of uniform values for one draw.
type Uniforms []Uniform

// Lookup returns the uniform called name.
func (us Uniforms) Lookup(name string) (Uniform, bool) {
	for _, u := range us {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}

// Vec2 returns element i of a vec2 uniform, or the zero vector.
func (us Uniforms) Vec2(name string, i int) f32.Vec2 {
	u, ok := us.Lookup(name)
	if !ok || u.Kind != UniformVec2 || i >= u.Len() {
		return f32.Vec2{}
	}
	return f32.Vec2{u.Values[2*i], u.Values[2*i+1]}
}

// Vec3 returns element i of a vec3 uniform, or the zero vector.
func (us Uniforms) Vec3(name string, i int) f32.Vec3 {
	u, ok := us.Lookup(name)
	if !ok || u.Kind != UniformVec3 || i >= u.Len() {
		return f32.Vec3{}
	}
	return f32.Vec3{u.Values[3*i], u.Values[3*i+1], u.Values[3*i+2]}
}
