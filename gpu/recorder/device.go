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

package recorder

import (
	"fmt"
	"slices"

	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/shader"
)

// the recorder is a complete device
var _ gpu.Device = (*Recorder)(nil)

// CompileProgram implements the shader.Compiler interface
func (rec *Recorder) CompileProgram(vertex string, fragment string, bindings []shader.AttributeBinding) (uint32, error) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	if rec.FailCompile {
		rec.record(Op{Kind: CompileProgram})
		return 0, fmt.Errorf("%w: recorder: compilation disabled", shader.ErrLinkage)
	}

	h := rec.handle()
	rec.programs[h] = Program{
		Vertex:   vertex,
		Fragment: fragment,
		Bindings: slices.Clone(bindings),
	}
	rec.record(Op{Kind: CompileProgram, Handle: h})
	return h, nil
}

// UseProgram implements the shader.Compiler interface
func (rec *Recorder) UseProgram(program uint32) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if _, ok := rec.programs[program]; !ok {
		panic(fmt.Sprintf("recorder: use of unknown program %d", program))
	}
	rec.current = program
	rec.record(Op{Kind: UseProgram, Handle: program})
}

// ApplyUniform implements the shader.Compiler interface
func (rec *Recorder) ApplyUniform(program uint32, u shader.Uniform) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if program != rec.current {
		panic(fmt.Sprintf("recorder: uniform %s applied to program %d which is not current", u.Name, program))
	}
	floats := slices.Clone(u.Floats)
	for _, v := range u.Ints {
		floats = append(floats, float32(v))
	}
	rec.record(Op{Kind: ApplyUniform, Handle: program, Name: u.Name, Floats: floats, Args: []int{int(u.Kind)}})
}

// DeleteProgram implements the shader.Compiler interface
func (rec *Recorder) DeleteProgram(program uint32) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	delete(rec.programs, program)
	if rec.current == program {
		rec.current = 0
	}
	rec.record(Op{Kind: DeleteProgram, Handle: program})
}

// NewVertexBuffer implements the gpu.Device interface
func (rec *Recorder) NewVertexBuffer(size int, layout gpu.Layout) gpu.Buffer {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	b := gpu.Buffer(rec.handle())
	rec.buffers[b] = &buffer{size: size, layout: layout, data: make([]byte, size)}
	rec.record(Op{Kind: NewVertexBuffer, Handle: uint32(b), Args: []int{size, layout.Stride}})
	return b
}

// WriteBuffer implements the gpu.Device interface
func (rec *Recorder) WriteBuffer(b gpu.Buffer, chunks ...[]byte) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	buf, ok := rec.buffers[b]
	if !ok {
		panic(fmt.Sprintf("recorder: write to unknown buffer %d", b))
	}

	var n int
	for _, c := range chunks {
		if n+len(c) > buf.size {
			panic(fmt.Sprintf("recorder: write of %d bytes overflows buffer %d of %d bytes", n+len(c), b, buf.size))
		}
		copy(buf.data[n:], c)
		n += len(c)
	}

	op := Op{Kind: WriteBuffer, Handle: uint32(b), Args: []int{n}}
	if rec.retain {
		op.Data = slices.Clone(buf.data[:n])
	}
	rec.record(op)
}

// NewDataTexture implements the gpu.Device interface
func (rec *Recorder) NewDataTexture(unit gpu.TextureUnit, width int, height int, depth int) gpu.Texture {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if depth < 1 || depth > 4 {
		panic(fmt.Sprintf("recorder: unsupported texture depth %d", depth))
	}
	t := gpu.Texture(rec.handle())
	rec.textures[t] = &texture{width: width, height: height, depth: depth, data: make([]byte, width*height*depth)}
	rec.record(Op{Kind: NewDataTexture, Handle: uint32(t), Args: []int{int(unit), width, height, depth}})
	return t
}

// WriteDataTexture implements the gpu.Device interface
func (rec *Recorder) WriteDataTexture(t gpu.Texture, x int, y int, width int, rows int, pixels []byte) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	tex, ok := rec.textures[t]
	if !ok {
		panic(fmt.Sprintf("recorder: write to unknown texture %d", t))
	}
	if y < 0 || rows < 1 || y+rows > tex.height {
		panic(fmt.Sprintf("recorder: rows %d to %d are outside of texture %d", y, y+rows, t))
	}
	if x < 0 || width < 1 || x+width > tex.width {
		panic(fmt.Sprintf("recorder: columns %d to %d are outside of texture %d", x, x+width, t))
	}
	span := width * tex.depth
	if len(pixels) != rows*span {
		panic(fmt.Sprintf("recorder: %d bytes is the wrong amount of data for %dx%d region of texture %d", len(pixels), width, rows, t))
	}
	stride := tex.width * tex.depth
	for r := 0; r < rows; r++ {
		copy(tex.data[(y+r)*stride+x*tex.depth:], pixels[r*span:(r+1)*span])
	}
	rec.record(Op{Kind: WriteDataTexture, Handle: uint32(t), Args: []int{x, y, width, rows}})
}

// NewTarget implements the gpu.Device interface
func (rec *Recorder) NewTarget(unit gpu.TextureUnit, width int, height int, stencil bool) gpu.Target {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	t := gpu.Target(rec.handle())
	rec.targets[t] = &target{width: width, height: height, stencil: stencil}
	rec.record(Op{Kind: NewTarget, Handle: uint32(t), Args: []int{int(unit), width, height, flag(stencil)}})
	return t
}

// BindTarget implements the gpu.Device interface
func (rec *Recorder) BindTarget(t gpu.Target) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if _, ok := rec.targets[t]; !ok {
		panic(fmt.Sprintf("recorder: bind of unknown target %d", t))
	}
	rec.record(Op{Kind: BindTarget, Handle: uint32(t)})
}

// BindSurface implements the gpu.Device interface
func (rec *Recorder) BindSurface(s gpu.Surface, width int, height int) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.record(Op{Kind: BindSurface, Handle: uint32(s), Args: []int{width, height}})
}

// ClearRows implements the gpu.Device interface
func (rec *Recorder) ClearRows(y int, rows int) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.record(Op{Kind: ClearRows, Args: []int{y, rows}})
}

// Clear implements the gpu.Device interface
func (rec *Recorder) Clear(colour bool, stencil bool) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.record(Op{Kind: Clear, Args: []int{flag(colour), flag(stencil)}})
}

// SetAccumulate implements the gpu.Device interface
func (rec *Recorder) SetAccumulate(enabled bool) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.accumulate = enabled
	rec.record(Op{Kind: SetAccumulate, Args: []int{flag(enabled)}})
}

// SetDecay implements the gpu.Device interface
func (rec *Recorder) SetDecay(level float32) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.record(Op{Kind: SetDecay, Floats: []float32{level}})
}

// DrawInstanced implements the gpu.Device interface
func (rec *Recorder) DrawInstanced(b gpu.Buffer, instances int) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	buf, ok := rec.buffers[b]
	if !ok {
		panic(fmt.Sprintf("recorder: draw from unknown buffer %d", b))
	}
	if instances*buf.layout.Stride > buf.size {
		panic(fmt.Sprintf("recorder: draw of %d instances overflows buffer %d", instances, b))
	}
	if rec.current == 0 {
		panic("recorder: draw with no program")
	}
	rec.record(Op{Kind: DrawInstanced, Handle: uint32(b), Program: rec.current, Args: []int{instances}})
}

// Fill implements the gpu.Device interface
func (rec *Recorder) Fill(r float32, g float32, b float32) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.record(Op{Kind: Fill, Floats: []float32{r, g, b}, Args: []int{flag(rec.accumulate)}})
}

// DrawTarget implements the gpu.Device interface
func (rec *Recorder) DrawTarget(src gpu.Target, aspect float32, threshold float32) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if _, ok := rec.targets[src]; !ok {
		panic(fmt.Sprintf("recorder: draw of unknown target %d", src))
	}
	rec.record(Op{Kind: DrawTarget, Handle: uint32(src), Floats: []float32{aspect, threshold}})
}

// NewFence implements the gpu.Device interface
func (rec *Recorder) NewFence() gpu.Fence {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	f := gpu.Fence(rec.handle())
	rec.fences[f] = true
	rec.record(Op{Kind: NewFence, Handle: uint32(f)})
	return f
}

// WaitFence implements the gpu.Device interface
func (rec *Recorder) WaitFence(f gpu.Fence, blocking bool) bool {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	if !rec.fences[f] {
		panic(fmt.Sprintf("recorder: wait on unknown fence %d", f))
	}
	signalled := true
	if !blocking && rec.BusyFences > 0 {
		rec.BusyFences--
		signalled = false
	}
	rec.record(Op{Kind: WaitFence, Handle: uint32(f), Args: []int{flag(blocking), flag(signalled)}})
	return signalled
}

// DeleteFence implements the gpu.Device interface
func (rec *Recorder) DeleteFence(f gpu.Fence) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	delete(rec.fences, f)
	rec.record(Op{Kind: DeleteFence, Handle: uint32(f)})
}

// DeleteBuffer implements the gpu.Device interface
func (rec *Recorder) DeleteBuffer(b gpu.Buffer) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	delete(rec.buffers, b)
	rec.record(Op{Kind: DeleteBuffer, Handle: uint32(b)})
}

// DeleteTexture implements the gpu.Device interface
func (rec *Recorder) DeleteTexture(t gpu.Texture) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	delete(rec.textures, t)
	rec.record(Op{Kind: DeleteTexture, Handle: uint32(t)})
}

// DeleteTarget implements the gpu.Device interface
func (rec *Recorder) DeleteTarget(t gpu.Target) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	delete(rec.targets, t)
	rec.record(Op{Kind: DeleteTarget, Handle: uint32(t)})
}
