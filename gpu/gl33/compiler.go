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

package gl33

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/jetsetilly/scanout/shader"
)

func shaderSource(handle uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(handle, 1, csource, nil)
}

// getShaderCompileError returns the most recent error generated by the shader
// compiler. returns the empty string if there was no error
func getShaderCompileError(handle uint32) string {
	var isCompiled int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &isCompiled)
	if isCompiled == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		// a failed compilation with no information log is still an error
		if logLength <= 0 {
			return "no information log"
		}

		// the log length includes the NULL character
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, &logLength, gl.Str(log))
		return strings.TrimRight(log, "\x00")
	}
	return ""
}

func getProgramLinkError(handle uint32) string {
	var isLinked int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &isLinked)
	if isLinked == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		if logLength <= 0 {
			return "no information log"
		}
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, &logLength, gl.Str(log))
		return strings.TrimRight(log, "\x00")
	}
	return ""
}

// CompileProgram implements the shader.Compiler interface
func (dev *Device) CompileProgram(vertex string, fragment string, bindings []shader.AttributeBinding) (uint32, error) {
	vertHandle := gl.CreateShader(gl.VERTEX_SHADER)
	defer gl.DeleteShader(vertHandle)
	fragHandle := gl.CreateShader(gl.FRAGMENT_SHADER)
	defer gl.DeleteShader(fragHandle)

	shaderSource(vertHandle, vertex)
	gl.CompileShader(vertHandle)
	if log := getShaderCompileError(vertHandle); log != "" {
		return 0, fmt.Errorf("%w: %s", shader.ErrVertexCompilation, log)
	}

	shaderSource(fragHandle, fragment)
	gl.CompileShader(fragHandle)
	if log := getShaderCompileError(fragHandle); log != "" {
		return 0, fmt.Errorf("%w: %s", shader.ErrFragmentCompilation, log)
	}

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vertHandle)
	gl.AttachShader(handle, fragHandle)

	for _, b := range bindings {
		gl.BindAttribLocation(handle, b.Location, gl.Str(b.Name+"\x00"))
	}

	gl.LinkProgram(handle)
	if log := getProgramLinkError(handle); log != "" {
		gl.DeleteProgram(handle)
		return 0, fmt.Errorf("%w: %s", shader.ErrLinkage, log)
	}

	// the individual shaders are no longer required once the program has linked
	gl.DetachShader(handle, vertHandle)
	gl.DetachShader(handle, fragHandle)

	dev.uniforms[handle] = make(map[string]int32)

	return handle, nil
}

// UseProgram implements the shader.Compiler interface
func (dev *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (dev *Device) uniformLocation(program uint32, name string) int32 {
	locs, ok := dev.uniforms[program]
	if !ok {
		locs = make(map[string]int32)
		dev.uniforms[program] = locs
	}
	if l, ok := locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	locs[name] = l
	return l
}

// ApplyUniform implements the shader.Compiler interface
func (dev *Device) ApplyUniform(program uint32, u shader.Uniform) {
	// a location of -1 indicates that the uniform is not active in the
	// program. the GL ignores the value in that case so there's no need to
	// check for it here
	loc := dev.uniformLocation(program, u.Name)

	switch u.Kind {
	case shader.UniformInt:
		gl.Uniform1i(loc, u.Ints[0])
	case shader.UniformFloat:
		switch len(u.Floats) {
		case 1:
			gl.Uniform1f(loc, u.Floats[0])
		case 2:
			gl.Uniform2f(loc, u.Floats[0], u.Floats[1])
		case 3:
			gl.Uniform3f(loc, u.Floats[0], u.Floats[1], u.Floats[2])
		case 4:
			gl.Uniform4f(loc, u.Floats[0], u.Floats[1], u.Floats[2], u.Floats[3])
		}
	case shader.UniformFloatArray:
		if len(u.Floats) > 0 {
			gl.Uniform1fv(loc, int32(len(u.Floats)), &u.Floats[0])
		}
	case shader.UniformMatrix3:
		gl.UniformMatrix3fv(loc, 1, false, &u.Floats[0])
	}
}

// DeleteProgram implements the shader.Compiler interface
func (dev *Device) DeleteProgram(program uint32) {
	delete(dev.uniforms, program)
	gl.DeleteProgram(program)
}
