// This file is part of Scanout.
//
// Scanout is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scanout is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scanout.  If not, see <https://www.gnu.org/licenses/>.

package shader

import "errors"

// Sentinel errors returned by implementations of Compiler. The error will
// usually be wrapped with the information log from the driver
var (
	ErrVertexCompilation   = errors.New("vertex shader compilation")
	ErrFragmentCompilation = errors.New("fragment shader compilation")
	ErrLinkage             = errors.New("program linkage")
)

// AttributeBinding associates a named vertex attribute with a fixed location
type AttributeBinding struct {
	Name     string
	Location uint32
}

// UniformKind identifies how the values in a Uniform record should be applied
type UniformKind int

// List of valid UniformKind values
const (
	// a single integer. usually a texture unit
	UniformInt UniformKind = iota

	// a float, vec2, vec3 or vec4 depending on the number of values
	UniformFloat

	// an array of single floats
	UniformFloatArray

	// a 3x3 matrix in column-major order
	UniformMatrix3
)

func (k UniformKind) String() string {
	switch k {
	case UniformInt:
		return "int"
	case UniformFloat:
		return "float"
	case UniformFloatArray:
		return "float[]"
	case UniformMatrix3:
		return "mat3"
	}
	return "unknown"
}

// Uniform is a single record in a program's uniform command buffer
type Uniform struct {
	Name   string
	Kind   UniformKind
	Ints   []int32
	Floats []float32
}

// Compiler is implemented by anything that can turn GLSL source into a
// program handle and then apply uniforms to that program.
type Compiler interface {
	// CompileProgram compiles and links the vertex and fragment source. The
	// attribute bindings must be applied before linkage. Errors should wrap one
	// of the sentinel errors in this package
	CompileProgram(vertex string, fragment string, bindings []AttributeBinding) (uint32, error)

	// UseProgram makes the program current
	UseProgram(program uint32)

	// ApplyUniform sends the uniform to the program. The program will be the
	// current program
	ApplyUniform(program uint32, u Uniform)

	// DeleteProgram releases the program
	DeleteProgram(program uint32)
}
