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
	"github.com/jetsetilly/scanout/gpu"
)

// colour values in the presented image are raised to at least this value
const presentationThreshold = 4.0 / 255.0

// Draw everything submitted since the previous call to Draw() and present the
// result to the target surface.
//
// If the GPU has not yet finished with the previous pass then Draw() returns
// immediately, unless blocking is true, in which case Draw() waits.
//
// Draw() does nothing until the modals have been set. It must be called from
// the goroutine that owns the graphics context
func (st *ScanTarget) Draw(blocking bool, outputWidth int, outputHeight int) {
	st.consumer.Check("scantarget: consumer")

	if st.cons.fenceValid {
		if !st.dev.WaitFence(st.cons.fence, blocking) {
			st.stats.skipped.Add(1)
			return
		}
		st.dev.DeleteFence(st.cons.fence)
		st.cons.fenceValid = false
	}

	st.guard.acquire()
	defer st.guard.release()

	if st.destroyed || !st.modalsSet {
		return
	}

	// nothing can be presented to a surface with no area. submitted work is
	// left for a later pass
	if outputWidth < 1 || outputHeight < 1 {
		return
	}

	if st.modalsDirty {
		st.setupPipeline()
		st.modalsDirty = false
	}

	if st.decayDirty {
		st.dev.SetDecay(st.decay)
		st.decayDirty = false
	}

	submit := st.submit.Load()
	read := st.read.Load()

	newScans := ringDistance(int(read.Scan), int(submit.Scan), len(st.scans))
	if newScans > 0 {
		st.stageScans(int(read.Scan), newScans)
	}

	if submit.WriteArea != read.WriteArea {
		st.uploadWriteArea(read.WriteArea, submit.WriteArea)
	}

	st.composeScans(read, submit, newScans)

	st.sizeAccumulation(outputHeight)

	st.convertLines(read, submit)

	st.dev.BindSurface(st.surface, outputWidth, outputHeight)
	st.dev.Clear(true, false)
	aspect := float32(outputWidth) / float32(outputHeight)
	if !st.aspect {
		aspect = 4.0 / 3.0
	}
	st.dev.DrawTarget(st.cons.accumulation, aspect, presentationThreshold)

	st.read.Store(submit)

	st.cons.fence = st.dev.NewFence()
	st.cons.fenceValid = true

	st.stats.presented.Add(1)
}

// ringDistance returns the number of entries from a forward to b in a ring of
// size n
func ringDistance(a int, b int, n int) int {
	return (b - a + n) % n
}

// stageScans sends count scans starting at ring position from to the scan
// buffer. a wrapped range is sent as two chunks
func (st *ScanTarget) stageScans(from int, count int) {
	n := len(st.scans)
	for i := 0; i < count; i++ {
		s := (from + i) % n
		encodeScan(st.cons.scanStaging[s*scanStride:], &st.scans[s])
	}

	if from+count <= n {
		st.dev.WriteBuffer(st.cons.scanBuffer, st.cons.scanStaging[from*scanStride:(from+count)*scanStride])
	} else {
		st.dev.WriteBuffer(st.cons.scanBuffer,
			st.cons.scanStaging[from*scanStride:n*scanStride],
			st.cons.scanStaging[:(from+count-n)*scanStride])
	}
}

// uploadWriteArea sends the samples between the read and submit addresses to
// the data texture. whole rows are sent where possible, with a wrapped range
// of rows sent as two regions. the partial rows at either end are sent
// separately so that samples beyond the submit address, which may be in the
// process of being written by the producer, are never read
func (st *ScanTarget) uploadWriteArea(read Address, submit Address) {
	t := st.toroid
	w := t.Width()
	h := t.Height()

	if st.cons.dataTextureDepth == 0 {
		st.cons.dataTexture = st.dev.NewDataTexture(gpu.SourceDataUnit, w, h, st.depth)
		st.cons.dataTextureDepth = st.depth
	}

	upload := func(x int, y int, width int, rows int) {
		if width < 1 || rows < 1 {
			return
		}
		a := (y*w + x) * st.depth
		l := ((rows-1)*w + width) * st.depth
		st.dev.WriteDataTexture(st.cons.dataTexture, x, y, width, rows, st.area[a:a+l])
	}

	xs, ys := t.X(read), t.Y(read)
	xe, ye := t.X(submit), t.Y(submit)

	if ys == ye && xe >= xs {
		upload(xs, ys, xe-xs, 1)
		return
	}

	// remainder of the first row
	upload(xs, ys, w-xs, 1)

	// whole rows
	first := (ys + 1) % h
	if first <= ye {
		upload(0, first, w, ye-first)
	} else {
		upload(0, first, w, h-first)
		upload(0, 0, w, ye)
	}

	// start of the final row
	upload(0, ye, xe, 1)
}

// composeScans clears the rows of the unprocessed line buffer for lines that
// have been opened since the previous pass and then draws the new scans into
// the buffer
func (st *ScanTarget) composeScans(read Pointers, submit Pointers, newScans int) {
	n := len(st.lines)
	claimed := ringDistance(int(read.Line), int(submit.Line), n)

	if claimed == 0 && newScans == 0 {
		return
	}

	st.dev.BindTarget(st.cons.lineTarget)

	// the line at the read position was cleared when it was claimed. clear
	// everything after it up to and including the line at the submit position
	if claimed > 0 {
		first := (int(read.Line) + 1) % n
		if first+claimed <= n {
			st.dev.ClearRows(first, claimed)
		} else {
			st.dev.ClearRows(first, n-first)
			st.dev.ClearRows(0, first+claimed-n)
		}
	}

	if newScans > 0 && st.cons.composition != nil {
		st.cons.composition.Bind()
		st.dev.DrawInstanced(st.cons.scanBuffer, newScans)
		st.stats.scans.Add(uint64(newScans))
	}
}

// sizeAccumulation makes sure the accumulation buffer has a 4:3 shape and
// the same height as the output. the existing image is preserved when the
// size changes
func (st *ScanTarget) sizeAccumulation(outputHeight int) {
	width := max(outputHeight*4/3, 1)
	height := outputHeight

	if st.cons.accumulationWidth == width && st.cons.accumulationHeight == height {
		return
	}

	acc := st.dev.NewTarget(gpu.AccumulationUnit, width, height, true)

	if st.cons.accumulationWidth != 0 {
		st.dev.BindTarget(acc)
		st.dev.Clear(true, true)
		st.dev.DrawTarget(st.cons.accumulation, float32(width)/float32(height), 0.0)
		st.dev.Clear(false, true)
		st.dev.DeleteTarget(st.cons.accumulation)
	}

	st.cons.accumulation = acc
	st.cons.accumulationWidth = width
	st.cons.accumulationHeight = height

	// there is no way of resizing the stencil buffer so the content of the new
	// one can't be used to decide which pixels to decay
	st.cons.stencilValid = false
}

// convertLines draws the lines completed since the previous pass into the
// accumulation buffer. lines are drawn in runs that end at the start of a new
// frame. the start of each new frame decays the existing image, but only if
// the previous frame was complete
func (st *ScanTarget) convertLines(read Pointers, submit Pointers) {
	n := len(st.lines)
	newLines := ringDistance(int(read.Line), int(submit.Line), n)
	if newLines == 0 || st.cons.conversion == nil {
		return
	}

	conv := st.cons.conversion

	st.dev.BindTarget(st.cons.accumulation)
	st.dev.SetAccumulate(true)
	conv.Bind()

	start := int(read.Line)
	for newLines > 0 {
		end := (start + 1) % n
		spans := 1
		for end != int(submit.Line) && !st.lineMetadata[end].IsFirstInFrame {
			end = (end + 1) % n
			spans++
		}

		if st.lineMetadata[start].IsFirstInFrame {
			if st.cons.stencilValid && st.lineMetadata[start].PreviousFrameWasComplete {
				st.dev.Fill(0.0, 0.0, 0.0)
				st.stats.decays.Add(1)
			}
			st.cons.stencilValid = true
			st.dev.Clear(false, true)

			// filling may have changed the current program
			conv.Bind()
		}

		for i := 0; i < spans; i++ {
			l := (start + i) % n
			encodeLine(st.cons.lineStaging[l*lineStride:], &st.lines[l])
		}

		if end == 0 || end > start {
			st.dev.WriteBuffer(st.cons.lineBuffer, st.cons.lineStaging[start*lineStride:(start+spans)*lineStride])
		} else {
			st.dev.WriteBuffer(st.cons.lineBuffer,
				st.cons.lineStaging[start*lineStride:n*lineStride],
				st.cons.lineStaging[:end*lineStride])
		}

		st.dev.DrawInstanced(st.cons.lineBuffer, spans)
		st.stats.lines.Add(uint64(spans))

		start = end
		newLines -= spans
	}

	st.dev.SetAccumulate(false)
}
