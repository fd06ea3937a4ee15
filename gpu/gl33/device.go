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

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/logger"
)

type buffer struct {
	vbo  uint32
	vao  uint32
	size int
}

type texture struct {
	id     uint32
	unit   gpu.TextureUnit
	width  int32
	height int32
	depth  int
}

type target struct {
	fbo     uint32
	rbo     uint32
	tex     uint32
	unit    gpu.TextureUnit
	width   int32
	height  int32
	stencil bool
}

// Device implements the gpu.Device interface
type Device struct {
	nextHandle uint32
	buffers    map[gpu.Buffer]*buffer
	textures   map[gpu.Texture]*texture
	targets    map[gpu.Target]*target

	// uniform locations for each program. populated on demand
	uniforms map[uint32]map[string]int32

	// dimensions of the currently bound target or surface
	boundWidth  int32
	boundHeight int32

	// empty vertex array used for drawing with the internal programs. core
	// profile requires a vertex array to be bound even when there are no
	// attributes
	emptyVAO uint32

	fill fillProgram
	copy copyProgram
}

// the device is complete
var _ gpu.Device = (*Device)(nil)

// New is the preferred method of initialisation for the Device type
func New() (*Device, error) {
	dev := &Device{
		buffers:  make(map[gpu.Buffer]*buffer),
		textures: make(map[gpu.Texture]*texture),
		targets:  make(map[gpu.Target]*target),
		uniforms: make(map[uint32]map[string]int32),
	}

	logger.Logf(logger.Allow, "gl33", "vendor: %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	logger.Logf(logger.Allow, "gl33", "renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	logger.Logf(logger.Allow, "gl33", "version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.GenVertexArrays(1, &dev.emptyVAO)

	// blend function used by accumulation mode. incoming fragments are
	// weighted by their alpha and existing content decays
	gl.BlendFunc(gl.SRC_ALPHA, gl.CONSTANT_COLOR)
	gl.BlendColor(0.4, 0.4, 0.4, 1.0)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var err error
	dev.fill, err = newFillProgram(dev)
	if err != nil {
		return nil, fmt.Errorf("gl33: %w", err)
	}
	dev.copy, err = newCopyProgram(dev)
	if err != nil {
		return nil, fmt.Errorf("gl33: %w", err)
	}

	return dev, nil
}

// Destroy releases the internal resources of the device. Resources created
// through the gpu.Device interface should be deleted by their owner
func (dev *Device) Destroy() {
	dev.fill.Destroy()
	dev.copy.Destroy()
	gl.DeleteVertexArrays(1, &dev.emptyVAO)
}

func (dev *Device) handle() uint32 {
	dev.nextHandle++
	return dev.nextHandle
}

func attributeType(t gpu.AttributeType) uint32 {
	switch t {
	case gpu.Uint8:
		return gl.UNSIGNED_BYTE
	case gpu.Uint16:
		return gl.UNSIGNED_SHORT
	case gpu.Int16:
		return gl.SHORT
	}
	panic(fmt.Sprintf("gl33: unsupported attribute type %d", t))
}

// NewVertexBuffer implements the gpu.Device interface
func (dev *Device) NewVertexBuffer(size int, layout gpu.Layout) gpu.Buffer {
	buf := &buffer{size: size}

	gl.GenBuffers(1, &buf.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STREAM_DRAW)

	gl.GenVertexArrays(1, &buf.vao)
	gl.BindVertexArray(buf.vao)
	for _, a := range layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, int32(a.Components), attributeType(a.Type), false, int32(layout.Stride), uintptr(a.Offset))
		gl.VertexAttribDivisor(a.Location, 1)
	}

	b := gpu.Buffer(dev.handle())
	dev.buffers[b] = buf
	return b
}

// WriteBuffer implements the gpu.Device interface
func (dev *Device) WriteBuffer(b gpu.Buffer, chunks ...[]byte) {
	buf := dev.buffers[b]
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)

	var n int
	for _, c := range chunks {
		n += len(c)
	}
	if n == 0 {
		return
	}
	if n > buf.size {
		panic(fmt.Sprintf("gl33: write of %d bytes overflows buffer of %d bytes", n, buf.size))
	}

	// a single chunk can be copied directly
	if len(chunks) == 1 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n, gl.Ptr(chunks[0]))
		return
	}

	// more than one chunk is copied into a mapped region
	dest := mapBuffer(n)
	var o int
	for _, c := range chunks {
		o += copy(dest[o:], c)
	}
	gl.FlushMappedBufferRange(gl.ARRAY_BUFFER, 0, n)
	gl.UnmapBuffer(gl.ARRAY_BUFFER)
}

func internalFormatForDepth(depth int) int32 {
	switch depth {
	case 1:
		return gl.R8UI
	case 2:
		return gl.RG8UI
	case 3:
		return gl.RGB8UI
	case 4:
		return gl.RGBA8UI
	}
	panic(fmt.Sprintf("gl33: unsupported texture depth %d", depth))
}

func formatForDepth(depth int) uint32 {
	switch depth {
	case 1:
		return gl.RED_INTEGER
	case 2:
		return gl.RG_INTEGER
	case 3:
		return gl.RGB_INTEGER
	case 4:
		return gl.RGBA_INTEGER
	}
	panic(fmt.Sprintf("gl33: unsupported texture depth %d", depth))
}

func activeTexture(unit gpu.TextureUnit) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

func textureParameters() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
}

// NewDataTexture implements the gpu.Device interface
func (dev *Device) NewDataTexture(unit gpu.TextureUnit, width int, height int, depth int) gpu.Texture {
	tex := &texture{
		unit:   unit,
		width:  int32(width),
		height: int32(height),
		depth:  depth,
	}

	gl.GenTextures(1, &tex.id)
	activeTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	textureParameters()
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormatForDepth(depth), tex.width, tex.height, 0, formatForDepth(depth), gl.UNSIGNED_BYTE, nil)

	t := gpu.Texture(dev.handle())
	dev.textures[t] = tex
	return t
}

// WriteDataTexture implements the gpu.Device interface
func (dev *Device) WriteDataTexture(t gpu.Texture, x int, y int, width int, rows int, pixels []byte) {
	tex := dev.textures[t]
	if len(pixels) < width*rows*tex.depth {
		panic(fmt.Sprintf("gl33: %d bytes is not enough data for %dx%d region", len(pixels), width, rows))
	}
	activeTexture(tex.unit)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(x), int32(y), int32(width), int32(rows), formatForDepth(tex.depth), gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

// NewTarget implements the gpu.Device interface
func (dev *Device) NewTarget(unit gpu.TextureUnit, width int, height int, stencil bool) gpu.Target {
	tgt := &target{
		unit:    unit,
		width:   int32(width),
		height:  int32(height),
		stencil: stencil,
	}

	gl.GenTextures(1, &tgt.tex)
	activeTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, tgt.tex)
	textureParameters()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, tgt.width, tgt.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &tgt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, tgt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tgt.tex, 0)

	if stencil {
		gl.GenRenderbuffers(1, &tgt.rbo)
		gl.BindRenderbuffer(gl.RENDERBUFFER, tgt.rbo)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, tgt.width, tgt.height)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, tgt.rbo)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		logger.Logf(logger.Allow, "gl33", "incomplete framebuffer: %#x", status)
	}

	t := gpu.Target(dev.handle())
	dev.targets[t] = tgt

	dev.BindTarget(t)
	gl.ClearColor(0, 0, 0, 1)
	gl.ClearStencil(0)
	dev.Clear(true, stencil)

	return t
}

// BindTarget implements the gpu.Device interface
func (dev *Device) BindTarget(t gpu.Target) {
	tgt := dev.targets[t]
	gl.BindFramebuffer(gl.FRAMEBUFFER, tgt.fbo)
	gl.Viewport(0, 0, tgt.width, tgt.height)
	dev.boundWidth = tgt.width
	dev.boundHeight = tgt.height
}

// BindSurface implements the gpu.Device interface
func (dev *Device) BindSurface(s gpu.Surface, width int, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(s))
	gl.Viewport(0, 0, int32(width), int32(height))
	dev.boundWidth = int32(width)
	dev.boundHeight = int32(height)
}

// ClearRows implements the gpu.Device interface
func (dev *Device) ClearRows(y int, rows int) {
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(0, int32(y), dev.boundWidth, int32(rows))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

// Clear implements the gpu.Device interface
func (dev *Device) Clear(colour bool, stencil bool) {
	var mask uint32
	if colour {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if stencil {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// SetAccumulate implements the gpu.Device interface
func (dev *Device) SetAccumulate(enabled bool) {
	if enabled {
		gl.Enable(gl.BLEND)
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilFunc(gl.EQUAL, 0, ^uint32(0))
		gl.StencilOp(gl.KEEP, gl.KEEP, gl.INCR)
	} else {
		gl.Disable(gl.STENCIL_TEST)
		gl.Disable(gl.BLEND)
	}
}

// SetDecay implements the gpu.Device interface
func (dev *Device) SetDecay(level float32) {
	gl.BlendColor(level, level, level, 1.0)
}

// DrawInstanced implements the gpu.Device interface
func (dev *Device) DrawInstanced(b gpu.Buffer, instances int) {
	gl.BindVertexArray(dev.buffers[b].vao)
	gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, int32(instances))
}

// Fill implements the gpu.Device interface
func (dev *Device) Fill(r float32, g float32, b float32) {
	dev.fill.draw(dev, r, g, b)
}

// DrawTarget implements the gpu.Device interface
func (dev *Device) DrawTarget(src gpu.Target, aspect float32, threshold float32) {
	tgt := dev.targets[src]
	activeTexture(tgt.unit)
	gl.BindTexture(gl.TEXTURE_2D, tgt.tex)
	dev.copy.draw(dev, tgt.unit, aspect, threshold)
}

// NewFence implements the gpu.Device interface
func (dev *Device) NewFence() gpu.Fence {
	return gpu.Fence(gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0))
}

// WaitFence implements the gpu.Device interface
func (dev *Device) WaitFence(f gpu.Fence, blocking bool) bool {
	var timeout uint64
	if blocking {
		timeout = gl.TIMEOUT_IGNORED
	}
	return gl.ClientWaitSync(uintptr(f), gl.SYNC_FLUSH_COMMANDS_BIT, timeout) != gl.TIMEOUT_EXPIRED
}

// DeleteFence implements the gpu.Device interface
func (dev *Device) DeleteFence(f gpu.Fence) {
	gl.DeleteSync(uintptr(f))
}

// DeleteBuffer implements the gpu.Device interface
func (dev *Device) DeleteBuffer(b gpu.Buffer) {
	if buf, ok := dev.buffers[b]; ok {
		gl.DeleteVertexArrays(1, &buf.vao)
		gl.DeleteBuffers(1, &buf.vbo)
		delete(dev.buffers, b)
	}
}

// DeleteTexture implements the gpu.Device interface
func (dev *Device) DeleteTexture(t gpu.Texture) {
	if tex, ok := dev.textures[t]; ok {
		gl.DeleteTextures(1, &tex.id)
		delete(dev.textures, t)
	}
}

// DeleteTarget implements the gpu.Device interface
func (dev *Device) DeleteTarget(t gpu.Target) {
	if tgt, ok := dev.targets[t]; ok {
		if tgt.rbo != 0 {
			gl.DeleteRenderbuffers(1, &tgt.rbo)
		}
		gl.DeleteFramebuffers(1, &tgt.fbo)
		gl.DeleteTextures(1, &tgt.tex)
		delete(dev.targets, t)
	}
}
