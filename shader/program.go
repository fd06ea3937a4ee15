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

import (
	"fmt"
	"sync"

	"github.com/jetsetilly/scanout/logger"
)

// Program is a compiled and linked GLSL program
type Program struct {
	compiler Compiler
	handle   uint32

	// the uniform command buffer. protected by crit because uniforms can be
	// set from any goroutine
	crit    sync.Mutex
	pending []Uniform
}

// New compiles the vertex and fragment source with the Compiler. The list of
// attribute names are bound to locations in the order they are specified, the
// first attribute being bound to location zero.
//
// Compilation errors are logged as well as returned.
func New(c Compiler, vertex string, fragment string, attributes ...string) (*Program, error) {
	bindings := make([]AttributeBinding, len(attributes))
	for i, a := range attributes {
		bindings[i] = AttributeBinding{Name: a, Location: uint32(i)}
	}

	handle, err := c.CompileProgram(vertex, fragment, bindings)
	if err != nil {
		err = fmt.Errorf("shader: %w", err)
		logger.Log(logger.Allow, "shader", err)
		return nil, err
	}

	return &Program{
		compiler: c,
		handle:   handle,
	}, nil
}

// Handle returns the value returned by the Compiler for this program
func (p *Program) Handle() uint32 {
	return p.handle
}

// Bind makes the program current and applies all queued uniforms in order. The
// queue is empty after the call
func (p *Program) Bind() {
	p.compiler.UseProgram(p.handle)

	p.crit.Lock()
	defer p.crit.Unlock()

	for _, u := range p.pending {
		p.compiler.ApplyUniform(p.handle, u)
	}
	p.pending = p.pending[:0]
}

// Pending returns a copy of the uniform records that will be applied on the
// next call to Bind()
func (p *Program) Pending() []Uniform {
	p.crit.Lock()
	defer p.crit.Unlock()
	return append([]Uniform(nil), p.pending...)
}

// Destroy releases the program. The Program should not be used after Destroy()
func (p *Program) Destroy() {
	p.compiler.DeleteProgram(p.handle)
	p.handle = 0
}

func (p *Program) queue(u Uniform) {
	p.crit.Lock()
	defer p.crit.Unlock()
	p.pending = append(p.pending, u)
}

// SetUniformInt queues a single integer uniform
func (p *Program) SetUniformInt(name string, v int32) {
	p.queue(Uniform{Name: name, Kind: UniformInt, Ints: []int32{v}})
}

// SetUniformFloat queues a float uniform of between one and four components.
// Any other number of components will cause a panic
func (p *Program) SetUniformFloat(name string, v ...float32) {
	if len(v) < 1 || len(v) > 4 {
		panic(fmt.Sprintf("shader: float uniform %s with %d components", name, len(v)))
	}
	p.queue(Uniform{Name: name, Kind: UniformFloat, Floats: append([]float32(nil), v...)})
}

// SetUniformFloatArray queues an array of single float values
func (p *Program) SetUniformFloatArray(name string, v []float32) {
	p.queue(Uniform{Name: name, Kind: UniformFloatArray, Floats: append([]float32(nil), v...)})
}

// SetUniformMatrix3 queues a 3x3 matrix. Values are in column-major order
func (p *Program) SetUniformMatrix3(name string, m [9]float32) {
	p.queue(Uniform{Name: name, Kind: UniformMatrix3, Floats: m[:]})
}
