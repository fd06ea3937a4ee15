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

// Package recorder implements the gpu.Device interface without a GPU. Every
// operation is recorded as an Op and can be inspected afterwards. Misuse of
// the device, for example writing beyond the end of a buffer or drawing with
// an unknown handle, causes a panic.
//
// The recorder is used by the tests of the scan target and by the headless
// mode of the scanout program.
package recorder

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/shader"
)

// Kind identifies the operation in an Op
type Kind int

// List of valid Kind values
const (
	CompileProgram Kind = iota
	UseProgram
	ApplyUniform
	DeleteProgram
	NewVertexBuffer
	WriteBuffer
	NewDataTexture
	WriteDataTexture
	NewTarget
	BindTarget
	BindSurface
	ClearRows
	Clear
	SetAccumulate
	SetDecay
	DrawInstanced
	Fill
	DrawTarget
	NewFence
	WaitFence
	DeleteFence
	DeleteBuffer
	DeleteTexture
	DeleteTarget
	numKinds
)

var kindNames = [...]string{
	"CompileProgram", "UseProgram", "ApplyUniform", "DeleteProgram",
	"NewVertexBuffer", "WriteBuffer", "NewDataTexture", "WriteDataTexture",
	"NewTarget", "BindTarget", "BindSurface", "ClearRows", "Clear",
	"SetAccumulate", "SetDecay", "DrawInstanced", "Fill", "DrawTarget", "NewFence",
	"WaitFence", "DeleteFence", "DeleteBuffer", "DeleteTexture", "DeleteTarget",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Op is a single recorded operation. The meaning of Args depends on the Kind
// of operation:
//
//	NewVertexBuffer:  size, stride
//	WriteBuffer:      length of data
//	NewDataTexture:   unit, width, height, depth
//	WriteDataTexture: x, y, width, rows
//	NewTarget:        unit, width, height, stencil (0 or 1)
//	BindSurface:      width, height
//	ClearRows:        y, rows
//	Clear:            colour (0 or 1), stencil (0 or 1)
//	SetAccumulate:    enabled (0 or 1)
//	DrawInstanced:    instances
//	WaitFence:        blocking (0 or 1), signalled (0 or 1)
//
// Floats are used by ApplyUniform, SetDecay (level), Fill (r, g, b) and
// DrawTarget (aspect, threshold). Data holds a copy of the bytes sent to the GPU
type Op struct {
	Kind    Kind
	Handle  uint32
	Program uint32
	Args    []int
	Floats  []float32
	Data    []byte
	Name    string
}

func (op Op) String() string {
	s := strings.Builder{}
	s.WriteString(op.Kind.String())
	if op.Handle != 0 {
		s.WriteString(fmt.Sprintf(" #%d", op.Handle))
	}
	if op.Name != "" {
		s.WriteString(fmt.Sprintf(" %s", op.Name))
	}
	if len(op.Args) > 0 {
		s.WriteString(fmt.Sprintf(" %v", op.Args))
	}
	if len(op.Floats) > 0 {
		s.WriteString(fmt.Sprintf(" %v", op.Floats))
	}
	return s.String()
}

// Program is the source and bindings sent to CompileProgram()
type Program struct {
	Vertex   string
	Fragment string
	Bindings []shader.AttributeBinding
}

type buffer struct {
	size   int
	layout gpu.Layout
	data   []byte
}

type texture struct {
	width, height, depth int
	data                 []byte
}

type target struct {
	width, height int
	stencil       bool
}

// Recorder implements the gpu.Device interface
type Recorder struct {
	crit sync.Mutex

	ops    []Op
	counts [numKinds]int

	// if Retain is false then only the count of each kind of operation is kept
	retain bool

	// BusyFences is the number of non-blocking WaitFence() calls that will
	// report the GPU as being busy
	BusyFences int

	// if FailCompile is true then all calls to CompileProgram() will fail
	FailCompile bool

	nextHandle uint32
	programs   map[uint32]Program
	buffers    map[gpu.Buffer]*buffer
	textures   map[gpu.Texture]*texture
	targets    map[gpu.Target]*target
	fences     map[gpu.Fence]bool

	current    uint32
	accumulate bool
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
// If retain is false then the details of each operation are discarded and only
// the count of each kind is kept
func NewRecorder(retain bool) *Recorder {
	return &Recorder{
		retain:   retain,
		programs: make(map[uint32]Program),
		buffers:  make(map[gpu.Buffer]*buffer),
		textures: make(map[gpu.Texture]*texture),
		targets:  make(map[gpu.Target]*target),
		fences:   make(map[gpu.Fence]bool),
	}
}

func (rec *Recorder) record(op Op) {
	rec.counts[op.Kind]++
	if rec.retain {
		rec.ops = append(rec.ops, op)
	}
}

func (rec *Recorder) handle() uint32 {
	rec.nextHandle++
	return rec.nextHandle
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ops returns a copy of the recorded operations
func (rec *Recorder) Ops() []Op {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	return append([]Op(nil), rec.ops...)
}

// OpsOfKind returns a copy of the recorded operations of the specified kind
func (rec *Recorder) OpsOfKind(kind Kind) []Op {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	var ops []Op
	for _, op := range rec.ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Count returns the number of operations of the specified kind since the
// recorder was created or last Reset()
func (rec *Recorder) Count(kind Kind) int {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	return rec.counts[kind]
}

// Reset forgets all recorded operations. Resources are not affected
func (rec *Recorder) Reset() {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.ops = rec.ops[:0]
	rec.counts = [numKinds]int{}
}

// Program returns the source for the program handle
func (rec *Recorder) Program(handle uint32) (Program, bool) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	p, ok := rec.programs[handle]
	return p, ok
}

// BufferData returns a copy of the contents of the vertex buffer
func (rec *Recorder) BufferData(b gpu.Buffer) []byte {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	buf, ok := rec.buffers[b]
	if !ok {
		return nil
	}
	return append([]byte(nil), buf.data...)
}

// TextureData returns a copy of the contents of the data texture
func (rec *Recorder) TextureData(t gpu.Texture) []byte {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	tex, ok := rec.textures[t]
	if !ok {
		return nil
	}
	return append([]byte(nil), tex.data...)
}

// TargetSize returns the dimensions of the target
func (rec *Recorder) TargetSize(t gpu.Target) (int, int, bool) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	tgt, ok := rec.targets[t]
	if !ok {
		return 0, 0, false
	}
	return tgt.width, tgt.height, true
}

// Live returns the number of programs, buffers, textures, targets and fences
// that have not been deleted
func (rec *Recorder) Live() int {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	return len(rec.programs) + len(rec.buffers) + len(rec.textures) + len(rec.targets) + len(rec.fences)
}

// String returns a summary of the counts of each kind of operation
func (rec *Recorder) String() string {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	s := strings.Builder{}
	for k, n := range rec.counts {
		if n > 0 {
			s.WriteString(fmt.Sprintf("%s: %d\n", Kind(k), n))
		}
	}
	return s.String()
}
