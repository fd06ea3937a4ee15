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

package scantarget_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/scanout/scantarget"
	"github.com/jetsetilly/scanout/test"
)

func TestScanRingCapacity(t *testing.T) {
	opts := smallOptions()
	opts.ScanCapacity = 8
	st, _ := newTarget(t, opts)
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	// one entry is always left unused so that a full ring can be told apart
	// from an empty one
	for i := 0; i < 7; i++ {
		test.ExpectEquality(t, p.BeginScan() != nil, true, i)
		p.EndScan()
	}
	test.ExpectEquality(t, p.BeginScan() == nil, true)
	test.ExpectSuccess(t, p.Failed())

	// once failed, everything fails until the next submit
	test.ExpectEquality(t, p.BeginData(4, 1) == nil, true)

	p.Submit()
	test.ExpectFailure(t, p.Failed())
	test.ExpectEquality(t, p.Position().Scan, uint16(0))
	test.ExpectEquality(t, st.Statistics().Dropped, uint64(1))
	test.ExpectEquality(t, st.Statistics().Submitted, uint64(0))

	// the discarded scans are available again
	test.ExpectEquality(t, p.BeginScan() != nil, true)
	p.EndScan()
	p.Submit()
	test.ExpectEquality(t, st.Statistics().Submitted, uint64(1))
	test.ExpectEquality(t, st.State().Submit.Scan, uint16(1))
}

func TestDataAlignment(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	d := p.BeginData(3, 8)
	test.DemandEquality(t, len(d), 3)
	test.ExpectEquality(t, uint32(p.Position().WriteArea), uint32(8))
	p.EndData(3)

	// the next run starts after the guard sample
	test.ExpectEquality(t, uint32(p.Position().WriteArea), uint32(12))
	p.BeginData(1, 8)
	test.ExpectEquality(t, uint32(p.Position().WriteArea), uint32(16))

	// a short run moves the write position by the actual length only
	p.EndData(0)
	test.ExpectEquality(t, uint32(p.Position().WriteArea), uint32(17))
}

func TestEndDataWithoutRun(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	// nothing has been vended at the start of a fresh write area
	p.EndData(4)
	test.ExpectEquality(t, p.Position(), scantarget.Pointers{})
	test.ExpectFailure(t, p.Failed())

	// a run can only be ended once
	test.DemandEquality(t, len(p.BeginData(3, 1)), 3)
	p.EndData(3)
	position := p.Position()
	p.EndData(3)
	test.ExpectEquality(t, p.Position(), position)

	// an outstanding run is forgotten when the depth changes
	test.DemandEquality(t, len(p.BeginData(3, 1)), 3)
	test.DemandSuccess(t, st.SetModals(compositeModals()))
	p.EndData(3)
	test.ExpectEquality(t, p.Position(), scantarget.Pointers{})
}

func TestDataRowWrap(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	// move the write position to column 509
	test.DemandEquality(t, len(p.BeginData(507, 1)), 507)
	p.EndData(507)
	test.DemandEquality(t, uint32(p.Position().WriteArea), uint32(509))

	// a run of ten samples aligned to four would end beyond the end of the
	// row so it starts on the next row instead
	d := p.BeginData(10, 4)
	test.DemandEquality(t, len(d), 10)
	pos := p.Position().WriteArea

	tor, err := scantarget.NewToroid(512, 4)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tor.X(pos), 4)
	test.ExpectEquality(t, tor.Y(pos), 1)

	// a run that could never fit on a row fails the batch
	p.EndData(10)
	test.ExpectEquality(t, p.BeginData(600, 1) == nil, true)
	test.ExpectSuccess(t, p.Failed())
}

func TestDataLap(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	// four rows of 512 samples. each run fills most of a row so the fifth run
	// would overwrite data that hasn't been drawn
	for i := 0; i < 4; i++ {
		test.DemandEquality(t, len(p.BeginData(500, 1)), 500, i)
		p.EndData(500)
	}
	test.ExpectEquality(t, p.BeginData(500, 1) == nil, true)
	test.ExpectSuccess(t, p.Failed())

	// submission of the failed batch rewinds to the last submitted position
	p.Submit()
	test.ExpectEquality(t, uint32(p.Position().WriteArea), uint32(0))
	test.DemandEquality(t, len(p.BeginData(500, 1)), 500)
}

func TestDataBeforeModals(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	p := st.Producer()
	test.ExpectEquality(t, p.BeginData(4, 1) == nil, true)
	test.ExpectSuccess(t, p.Failed())
	p.Submit()
	test.ExpectEquality(t, st.Statistics().Dropped, uint64(1))
}

func TestEmptyLinesDiscarded(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	for i := 0; i < 5; i++ {
		p.Announce(scantarget.EventEndHorizontalRetrace, true, scantarget.EndPoint{}, 0)
		p.Announce(scantarget.EventBeginHorizontalRetrace, false, scantarget.EndPoint{X: 100}, 0)
	}
	test.ExpectEquality(t, p.Position().Line, uint16(0))

	// a line is only claimed once the previous line has received a scan
	emitLine(t, p, 0)
	test.ExpectEquality(t, p.Position().Line, uint16(0))
	emitLine(t, p, 2)
	test.ExpectEquality(t, p.Position().Line, uint16(1))

	s := p.State()
	test.DemandEquality(t, s.Producer.ActiveLine != nil, true)
	test.ExpectEquality(t, s.Producer.ActiveLine.Line, uint16(1))
	test.ExpectEquality(t, s.Producer.ActiveLine.EndPoints[0].Y, uint16(2))
	test.ExpectEquality(t, s.Producer.ActiveLine.EndPoints[1].X, uint16(200))
	test.ExpectEquality(t, s.Producer.ProvidedScans, 1)
}

func TestFrameTracking(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	emitFrame(t, p, 2)
	s := p.State()
	test.ExpectSuccess(t, s.Producer.IsFirstInFrame)
	test.ExpectSuccess(t, s.Producer.FrameIsComplete)
	test.ExpectFailure(t, s.Producer.PreviousFrameWasComplete)

	// a third line concludes the line that was open at the end of the
	// retrace
	emitLine(t, p, 4)
	test.ExpectFailure(t, p.State().Producer.IsFirstInFrame)

	// a failed batch marks the frame as incomplete
	test.ExpectEquality(t, p.BeginData(1000, 1) == nil, true)
	p.Submit()
	test.ExpectFailure(t, p.State().Producer.FrameIsComplete)

	// which is passed to the next frame
	p.Announce(scantarget.EventEndVerticalRetrace, false, scantarget.EndPoint{}, 0)
	s = p.State()
	test.ExpectFailure(t, s.Producer.PreviousFrameWasComplete)
	test.ExpectSuccess(t, s.Producer.FrameIsComplete)

	p.Announce(scantarget.EventEndVerticalRetrace, false, scantarget.EndPoint{}, 0)
	test.ExpectSuccess(t, p.State().Producer.PreviousFrameWasComplete)
}

func TestLineRingCapacity(t *testing.T) {
	opts := smallOptions()
	opts.LineCapacity = 4
	st, _ := newTarget(t, opts)
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	// lines 0 to 3 can be claimed but the claim of line 0 after that fails
	for i := 0; i < 4; i++ {
		emitLine(t, p, uint16(i))
		test.ExpectFailure(t, p.Failed(), i)
	}
	p.Announce(scantarget.EventEndHorizontalRetrace, true, scantarget.EndPoint{}, 0)
	test.ExpectSuccess(t, p.Failed())
	test.ExpectEquality(t, p.State().Producer.ActiveLine == nil, true)
}

func TestProducerClaim(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	_ = st.Producer()
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	_ = st.Producer()
}

func TestSetModals(t *testing.T) {
	st, _ := newTarget(t, smallOptions())

	_, ok := st.Modals()
	test.ExpectFailure(t, ok)

	m := luminanceModals()
	m.ExpectedVerticalLines = 0
	err := st.SetModals(m)
	test.ExpectSuccess(t, errors.Is(err, scantarget.ErrModals))

	m = compositeModals()
	m.ColourCycleDenominator = 0
	err = st.SetModals(m)
	test.ExpectSuccess(t, errors.Is(err, scantarget.ErrModals))

	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	m, ok = st.Modals()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m.InputDataType, scantarget.Luminance8)
}

func TestDepthChangeResets(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	emitFrame(t, p, 3)
	p.Submit()
	test.ExpectInequality(t, st.State().Submit, scantarget.Pointers{})

	// same depth. nothing changes
	m := luminanceModals()
	m.InputDataType = scantarget.Red2Green2Blue2
	test.DemandSuccess(t, st.SetModals(m))
	test.ExpectInequality(t, st.State().Submit, scantarget.Pointers{})

	// different depth. everything is discarded
	test.DemandSuccess(t, st.SetModals(compositeModals()))
	s := p.State()
	test.ExpectEquality(t, s.Producer.Write, scantarget.Pointers{})
	test.ExpectEquality(t, s.Submit, scantarget.Pointers{})
	test.ExpectEquality(t, s.Read, scantarget.Pointers{})
	test.ExpectEquality(t, s.Producer.ActiveLine == nil, true)

	// the new depth is used for data
	test.ExpectEquality(t, len(p.BeginData(4, 1)), 16)
}
