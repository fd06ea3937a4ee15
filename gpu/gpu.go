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

// Package gpu defines the narrow set of rendering operations required by the
// scan target. Implementations are found in the gl33 package, which uses
// OpenGL 3.3 core, and the recorder package, which records every operation
// and is suitable for testing and for running without a display.
//
// The interface deals only in handles. Handle values of zero are never
// returned for a successfully created resource, with the exception of
// Surface, where zero is the default framebuffer of the window.
package gpu

import "github.com/jetsetilly/scanout/shader"

// Buffer is a vertex buffer with an associated attribute layout
type Buffer uint32

// Texture is an unsigned integer texture used to hold raw sample data
type Texture uint32

// Target is an offscreen render target. It is backed by a colour texture and
// optionally a stencil buffer
type Target uint32

// Surface is a framebuffer owned by the caller of the scan target. Zero is the
// default framebuffer
type Surface uint32

// Fence marks a point in the GPU command stream
type Fence uintptr

// TextureUnit is the texture unit that a texture or target is bound to
type TextureUnit int

// List of texture units used by the scan target
const (
	SourceDataUnit      TextureUnit = 0
	UnprocessedLineUnit TextureUnit = 1
	AccumulationUnit    TextureUnit = 2
)

// AttributeType is the type of each component of a vertex attribute
type AttributeType int

// List of valid AttributeType values
const (
	Uint8 AttributeType = iota
	Uint16
	Int16
)

// Size returns the number of bytes for a single component of the type
func (t AttributeType) Size() int {
	switch t {
	case Uint8:
		return 1
	case Uint16, Int16:
		return 2
	}
	return 0
}

// Attribute describes one per-instance vertex attribute within a record
type Attribute struct {
	Location   uint32
	Components int
	Type       AttributeType
	Offset     int
}

// Layout describes the records in a vertex buffer. Every attribute advances
// once per instance, not once per vertex
type Layout struct {
	Stride     int
	Attributes []Attribute
}

// Device is the interface to the GPU. All functions must be called from the
// goroutine that owns the underlying graphics context
type Device interface {
	shader.Compiler

	// NewVertexBuffer allocates a streaming vertex buffer of size bytes
	NewVertexBuffer(size int, layout Layout) Buffer

	// WriteBuffer replaces the start of the buffer with the concatenation of
	// the chunks
	WriteBuffer(b Buffer, chunks ...[]byte)

	// NewDataTexture creates an unsigned integer texture with the given number
	// of bytes (between one and four) per sample
	NewDataTexture(unit TextureUnit, width int, height int, depth int) Texture

	// WriteDataTexture replaces a region of the texture starting at column x
	// of row y. The pixels slice is tightly packed and must be
	// width*rows*depth bytes in length
	WriteDataTexture(t Texture, x int, y int, width int, rows int, pixels []byte)

	// NewTarget creates a render target. The contents are cleared to black
	NewTarget(unit TextureUnit, width int, height int, stencil bool) Target

	// BindTarget directs subsequent drawing to the target, with a viewport
	// covering the whole of it
	BindTarget(t Target)

	// BindSurface directs subsequent drawing to the surface, with a viewport
	// of the given dimensions
	BindSurface(s Surface, width int, height int)

	// ClearRows clears the colour of the rows in the currently bound target
	ClearRows(y int, rows int)

	// Clear the colour and/or stencil of the currently bound target
	Clear(colour bool, stencil bool)

	// SetAccumulate enables or disables accumulation mode. In accumulation mode
	// blending is enabled and the stencil test only allows drawing where the
	// stencil value is zero, incrementing the value when drawn
	SetAccumulate(enabled bool)

	// SetDecay sets the proportion of existing content that remains after
	// drawing in accumulation mode
	SetDecay(level float32)

	// DrawInstanced draws a four vertex triangle strip for each of the first
	// instances records in the buffer, using the current program
	DrawInstanced(b Buffer, instances int)

	// Fill the whole of the currently bound target with the colour. Subject to
	// the state set by SetAccumulate()
	Fill(r float32, g float32, b float32)

	// DrawTarget draws the target's texture to the currently bound target or
	// surface. The image is letterboxed to a 4:3 shape within the given aspect
	// ratio. Colour values below threshold are raised to the threshold
	DrawTarget(src Target, aspect float32, threshold float32)

	// NewFence inserts a fence into the command stream
	NewFence() Fence

	// WaitFence returns true if the fence has been passed. If blocking is true
	// then the function will wait until the fence has been passed
	WaitFence(f Fence, blocking bool) bool

	DeleteFence(f Fence)
	DeleteBuffer(b Buffer)
	DeleteTexture(t Texture)
	DeleteTarget(t Target)
}
