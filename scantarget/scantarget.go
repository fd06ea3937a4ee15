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

package scantarget

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/jetsetilly/scanout/assert"
	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/logger"
	"github.com/jetsetilly/scanout/shader"
)

// drawGuard excludes Draw() from changes to the modals, the target surface
// and destruction. held for at most one presentation pass so a spin is
// sufficient
type drawGuard struct {
	held atomic.Bool
}

func (g *drawGuard) acquire() {
	for !g.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (g *drawGuard) release() {
	g.held.Store(false)
}

// producer state. only ever touched by the producer, or by SetModals() when
// the producer is idle
type producerState struct {
	write Pointers

	// the current batch has failed. begin functions return nil until the next
	// call to Submit()
	failed bool

	// scan returned by BeginScan() and not yet ended
	vendedScan *scanRecord

	// start and length of the most recent data allocation. dataVended is true
	// between a successful BeginData() and the matching EndData()
	vendedWriteArea Address
	vendedLength    int
	dataVended      bool

	// line being added to. nil if no line is open or if the line ring was
	// full when the line was opened
	activeLine *Line

	// number of scans since the active line was opened
	providedScans int

	outputIsVisible bool

	// frame tracking. previousFrameWasComplete and frameIsComplete form a
	// two-slot queue that moves on at the end of vertical retrace
	isFirstInFrame           bool
	previousFrameWasComplete bool
	frameIsComplete          bool
}

// consumer state. only touched while the drawGuard is held
type consumerState struct {
	fence      gpu.Fence
	fenceValid bool

	scanBuffer gpu.Buffer
	lineBuffer gpu.Buffer

	// data texture is created on first upload because the depth of the
	// samples isn't known until then
	dataTexture      gpu.Texture
	dataTextureDepth int

	lineTarget gpu.Target

	accumulation       gpu.Target
	accumulationWidth  int
	accumulationHeight int

	stencilValid bool

	composition *shader.Program
	conversion  *shader.Program

	processingWidth int

	// staging memory for scan and line records
	scanStaging []byte
	lineStaging []byte
}

// ScanTarget accumulates scans into frames and presents them. Create with
// NewScanTarget()
type ScanTarget struct {
	dev  gpu.Device
	opts Options

	toroid Toroid

	scans        []scanRecord
	lines        []Line
	lineMetadata []LineMetadata

	// the write area. reallocated when the depth of the input data changes
	area  []byte
	depth int

	submit pointerCell
	read   pointerCell

	prod     producerState
	producer atomic.Pointer[Producer]

	guard drawGuard

	// the following fields are protected by the guard
	modals      Modals
	modalsSet   bool
	modalsDirty bool
	surface     gpu.Surface
	outputGamma float32
	decay       float32
	decayDirty  bool
	aspect      bool
	destroyed   bool

	cons     consumerState
	consumer assert.Owner

	stats statistics
}

// the proportion of the accumulation buffer that remains after a decay pass
const defaultDecay = 0.4

// NewScanTarget is the preferred method of initialisation for the ScanTarget
// type. The target surface is the default surface until SetTargetSurface() is
// called.
//
// Nothing is drawn until the modals have been set with SetModals()
func NewScanTarget(dev gpu.Device, opts Options) (*ScanTarget, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("scantarget: %w", err)
	}

	toroid, err := NewToroid(opts.WriteAreaWidth, opts.WriteAreaHeight)
	if err != nil {
		return nil, err
	}

	st := &ScanTarget{
		dev:          dev,
		opts:         opts,
		toroid:       toroid,
		scans:        make([]scanRecord, opts.ScanCapacity),
		lines:        make([]Line, opts.LineCapacity),
		lineMetadata: make([]LineMetadata, opts.LineCapacity),
		outputGamma:  opts.OutputGamma,
		decay:        defaultDecay,
		decayDirty:   true,
		aspect:       true,
	}

	st.submit.Store(st.prod.write)
	st.read.Store(st.prod.write)

	st.cons.scanBuffer = dev.NewVertexBuffer(opts.ScanCapacity*scanStride, scanLayout)
	st.cons.lineBuffer = dev.NewVertexBuffer(opts.LineCapacity*lineStride, lineLayout)
	st.cons.lineTarget = dev.NewTarget(gpu.UnprocessedLineUnit, lineBufferWidth, opts.LineCapacity, false)
	st.cons.scanStaging = make([]byte, opts.ScanCapacity*scanStride)
	st.cons.lineStaging = make([]byte, opts.LineCapacity*lineStride)

	logger.Logf(logger.Allow, "scantarget", "scans: %d, lines: %d, write area: %dx%d",
		opts.ScanCapacity, opts.LineCapacity, toroid.Width(), toroid.Height())

	return st, nil
}

// Producer returns the producer handle for the scan target. There can only be
// one producer and a second call to Producer() will panic
func (st *ScanTarget) Producer() *Producer {
	p := &Producer{st: st}
	if !st.producer.CompareAndSwap(nil, p) {
		panic("scantarget: producer has already been claimed")
	}
	return p
}

// SetModals changes the format of the signal being produced. If the depth of
// the input data changes then the write area is reallocated and everything
// that has been submitted but not yet drawn is discarded.
//
// SetModals() should be called by the producer, or before the producer
// starts, because a change of depth resets the producer's position.
func (st *ScanTarget) SetModals(m Modals) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("scantarget: %w", err)
	}

	st.guard.acquire()
	defer st.guard.release()

	if d := m.InputDataType.Depth(); d != st.depth {
		st.depth = d
		st.area = make([]byte, st.toroid.Size()*d)

		// the rings are now empty
		st.prod.write = Pointers{}
		st.prod.vendedScan = nil
		st.prod.dataVended = false
		st.prod.activeLine = nil
		st.prod.providedScans = 0
		st.submit.Store(st.prod.write)
		st.read.Store(st.prod.write)

		logger.Logf(logger.Allow, "scantarget", "write area depth: %d", d)
	}

	st.modals = m
	st.modalsSet = true
	st.modalsDirty = true

	return nil
}

// Modals returns the current modals. The boolean return value is false if
// SetModals() has not been called
func (st *ScanTarget) Modals() (Modals, bool) {
	st.guard.acquire()
	defer st.guard.release()
	return st.modals, st.modalsSet
}

// SetTargetSurface changes the surface that Draw() presents to
func (st *ScanTarget) SetTargetSurface(s gpu.Surface) {
	st.guard.acquire()
	defer st.guard.release()
	st.surface = s
}

// SetOutputGamma changes the gamma of the display that the target surface is
// shown on. The conversion program will be rebuilt on the next Draw()
func (st *ScanTarget) SetOutputGamma(gamma float32) error {
	if gamma <= 0 {
		return fmt.Errorf("scantarget: %w: output gamma %.2f", ErrOptions, gamma)
	}
	st.guard.acquire()
	defer st.guard.release()
	st.outputGamma = gamma
	st.modalsDirty = st.modalsSet
	return nil
}

// SetDecay changes the proportion of the previous frame that remains at the
// start of a new frame. The value is clamped to the range 0 to 1
func (st *ScanTarget) SetDecay(level float32) {
	st.guard.acquire()
	defer st.guard.release()
	st.decay = min(max(level, 0.0), 1.0)
	st.decayDirty = true
}

// SetAspectCorrection sets whether the presented image keeps its 4:3 shape.
// If false the image is stretched to fill the target surface
func (st *ScanTarget) SetAspectCorrection(correct bool) {
	st.guard.acquire()
	defer st.guard.release()
	st.aspect = correct
}

// ProcessingWidth returns the width, in samples, needed to represent a line
// without losing detail. It is zero until the first Draw() after SetModals()
func (st *ScanTarget) ProcessingWidth() int {
	st.guard.acquire()
	defer st.guard.release()
	return st.cons.processingWidth
}

// Destroy waits for any presentation pass to complete and then releases all
// GPU resources. The ScanTarget should not be used after Destroy()
func (st *ScanTarget) Destroy() {
	st.guard.acquire()
	defer st.guard.release()

	if st.destroyed {
		return
	}
	st.destroyed = true

	if st.cons.fenceValid {
		st.dev.DeleteFence(st.cons.fence)
		st.cons.fenceValid = false
	}
	st.destroyPrograms()

	st.dev.DeleteBuffer(st.cons.scanBuffer)
	st.dev.DeleteBuffer(st.cons.lineBuffer)
	st.dev.DeleteTarget(st.cons.lineTarget)
	if st.cons.dataTextureDepth != 0 {
		st.dev.DeleteTexture(st.cons.dataTexture)
		st.cons.dataTextureDepth = 0
	}
	if st.cons.accumulationWidth != 0 {
		st.dev.DeleteTarget(st.cons.accumulation)
		st.cons.accumulationWidth = 0
	}
}
