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
	"github.com/jetsetilly/scanout/assert"
)

// Producer is the producer role of a ScanTarget. Obtain with the Producer()
// function of the ScanTarget. All functions must be called from the same
// goroutine
type Producer struct {
	st    *ScanTarget
	owner assert.Owner
}

// Release the producer role from the current goroutine. Only needed in
// builds with assertions, when the role is handed from one goroutine to
// another
func (p *Producer) Release() {
	p.owner.Release()
}

// BeginScan returns the next scan in the scan ring. The caller should fill in
// the scan and then call EndScan().
//
// Returns nil if the scan ring is full or if the batch has already failed.
// Any scan returned from BeginScan() must not be used after the call to
// EndScan()
func (p *Producer) BeginScan() *Scan {
	p.owner.Check("scantarget: producer")

	st := p.st
	ps := &st.prod

	if ps.failed {
		return nil
	}

	read := st.read.Load()
	next := uint16((int(ps.write.Scan) + 1) % len(st.scans))
	if next == read.Scan {
		ps.failed = true
		return nil
	}

	r := &st.scans[ps.write.Scan]
	*r = scanRecord{line: ps.write.Line}

	ps.write.Scan = next
	ps.providedScans++
	ps.vendedScan = r

	return &r.scan
}

// EndScan completes the scan returned by BeginScan(). The location of the
// most recent data run is added to the data offset of both end points
func (p *Producer) EndScan() {
	p.owner.Check("scantarget: producer")

	st := p.st
	ps := &st.prod

	if ps.vendedScan != nil {
		x := uint16(st.toroid.X(ps.vendedWriteArea))
		r := ps.vendedScan
		r.dataY = uint16(st.toroid.Y(ps.vendedWriteArea))
		r.line = ps.write.Line
		r.scan.EndPoints[0].DataOffset += x
		r.scan.EndPoints[1].DataOffset += x
	}
	ps.vendedScan = nil
}

// BeginData allocates a run of length samples in the write area. The start of
// the run is a multiple of alignment. There is a guard sample either side of
// the run that is filled in by EndData().
//
// The returned slice is length*depth bytes, where the depth is determined by
// the modals. Returns nil if there is no room in the write area, if the batch
// has already failed, or if the modals have not been set
func (p *Producer) BeginData(length int, alignment int) []byte {
	p.owner.Check("scantarget: producer")

	st := p.st
	ps := &st.prod

	if ps.failed {
		return nil
	}

	if st.area == nil || length < 0 {
		ps.failed = true
		return nil
	}

	if alignment < 1 {
		alignment = 1
	}

	width := st.toroid.Width()

	// the run starts after the guard sample following the previous run
	y := st.toroid.Y(ps.write.WriteArea)
	start := st.toroid.X(ps.write.WriteArea) + 1
	start += (alignment - start%alignment) % alignment
	end := start + 1 + length

	// runs never span two rows
	if end > width {
		y = (y + 1) % st.toroid.Height()
		start = alignment
		end = start + 1 + length
		if end > width {
			ps.failed = true
			return nil
		}
	}

	// if the end of the run is closer to the read pointer than the current
	// write position then the run has lapped the read pointer
	read := st.read.Load()
	endDistance := st.toroid.Sub(st.toroid.Address(end, y), read.WriteArea)
	previousDistance := st.toroid.Sub(ps.write.WriteArea, read.WriteArea)
	if endDistance < previousDistance {
		ps.failed = true
		return nil
	}

	ps.write.WriteArea = st.toroid.Address(start, y)
	ps.vendedWriteArea = ps.write.WriteArea
	ps.vendedLength = length
	ps.dataVended = true

	a := int(ps.write.WriteArea) * st.depth
	return st.area[a : a+length*st.depth : a+length*st.depth]
}

// EndData completes the run returned by BeginData(). The actualLength can be
// less than the length requested by BeginData() but not more. Does nothing if
// there is no outstanding run
func (p *Producer) EndData(actualLength int) {
	p.owner.Check("scantarget: producer")

	st := p.st
	ps := &st.prod

	if ps.failed || !ps.dataVended {
		return
	}
	ps.dataVended = false

	actualLength = min(max(actualLength, 0), ps.vendedLength)

	d := st.depth
	start := int(ps.write.WriteArea)
	end := start + actualLength + 1

	// duplicate the first and last samples into the guard samples
	copy(st.area[(start-1)*d:start*d], st.area[start*d:(start+1)*d])
	copy(st.area[(end-1)*d:end*d], st.area[(end-2)*d:(end-1)*d])

	ps.write.WriteArea = st.toroid.Add(ps.write.WriteArea, actualLength+1)
}

// Announce a change in the visibility of the signal, along with any event that
// caused it. The location is used as the start of a line when the signal
// becomes visible and the end of a line when the signal becomes invisible.
//
// The EventEndVerticalRetrace event marks the next line to be opened as the
// first of a new frame.
func (p *Producer) Announce(event Event, isVisible bool, location EndPoint, compositeAmplitude uint8) {
	p.owner.Check("scantarget: producer")

	st := p.st
	ps := &st.prod

	if event == EventEndVerticalRetrace {
		// the completeness of this frame is measured from now so the result
		// of the previous frame moves to the second slot
		ps.isFirstInFrame = true
		ps.previousFrameWasComplete = ps.frameIsComplete
		ps.frameIsComplete = true
	}

	if ps.outputIsVisible == isVisible {
		return
	}

	if isVisible {
		// a line with no scans is never stored
		if ps.providedScans > 0 {
			if ps.activeLine != nil {
				m := &st.lineMetadata[ps.write.Line]
				m.IsFirstInFrame = ps.isFirstInFrame
				m.PreviousFrameWasComplete = ps.previousFrameWasComplete
				ps.isFirstInFrame = false
			}

			read := st.read.Load()
			next := uint16((int(ps.write.Line) + 1) % len(st.lines))
			if next == read.Line {
				ps.failed = true
				ps.activeLine = nil
			} else {
				ps.write.Line = next
				ps.activeLine = &st.lines[next]
			}
			ps.providedScans = 0
		}

		if ps.activeLine != nil {
			ps.activeLine.EndPoints[0] = LineEndPoint{
				X:                                 location.X,
				Y:                                 location.Y,
				CompositeAngle:                    location.CompositeAngle,
				CyclesSinceEndOfHorizontalRetrace: location.CyclesSinceEndOfHorizontalRetrace,
			}
			ps.activeLine.Line = ps.write.Line
			ps.activeLine.CompositeAmplitude = compositeAmplitude
		}
	} else if ps.activeLine != nil {
		ps.activeLine.EndPoints[1] = LineEndPoint{
			X:                                 location.X,
			Y:                                 location.Y,
			CompositeAngle:                    location.CompositeAngle,
			CyclesSinceEndOfHorizontalRetrace: location.CyclesSinceEndOfHorizontalRetrace,
		}
	}

	ps.outputIsVisible = isVisible
}

// Submit publishes the work since the previous Submit(). If anything failed
// during the batch then the whole batch is discarded and the current frame is
// marked as incomplete
func (p *Producer) Submit() {
	p.owner.Check("scantarget: producer")

	st := p.st
	ps := &st.prod

	if ps.failed {
		ps.write = st.submit.Load()
		ps.frameIsComplete = false
		ps.vendedScan = nil
		ps.dataVended = false
		st.stats.dropped.Add(1)
	} else {
		st.submit.Store(ps.write)
		st.stats.submitted.Add(1)
	}

	ps.failed = false
}

// Failed returns true if the current batch has failed. The batch will be
// discarded by the next call to Submit()
func (p *Producer) Failed() bool {
	return p.st.prod.failed
}

// Position returns the producer's private pointers
func (p *Producer) Position() Pointers {
	return p.st.prod.write
}
