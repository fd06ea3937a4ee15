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
	"testing"

	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/gpu/recorder"
	"github.com/jetsetilly/scanout/scantarget"
	"github.com/jetsetilly/scanout/test"
)

// small rings and a small write area make it easy to exercise the edge cases
func smallOptions() scantarget.Options {
	return scantarget.Options{
		ScanCapacity:    64,
		LineCapacity:    16,
		WriteAreaWidth:  512,
		WriteAreaHeight: 4,
		OutputGamma:     2.2,
	}
}

func luminanceModals() scantarget.Modals {
	return scantarget.Modals{
		InputDataType:                       scantarget.Luminance8,
		DisplayType:                         scantarget.RGB,
		CyclesPerLine:                       228,
		ClocksPerPixelGreatestCommonDivisor: 1,
		ExpectedVerticalLines:               262,
		VisibleArea:                         scantarget.Rect{Width: 228, Height: 262},
		OutputScale:                         scantarget.Scale{X: 1, Y: 1},
		IntendedGamma:                       2.2,
		Brightness:                          1.0,
	}
}

func compositeModals() scantarget.Modals {
	m := luminanceModals()
	m.InputDataType = scantarget.Red8Green8Blue8
	m.DisplayType = scantarget.CompositeColour
	m.ColourCycleNumerator = 228
	m.ColourCycleDenominator = 1
	return m
}

func newTarget(t *testing.T, opts scantarget.Options) (*scantarget.ScanTarget, *recorder.Recorder) {
	t.Helper()
	rec := recorder.NewRecorder(true)
	st, err := scantarget.NewScanTarget(rec, opts)
	test.DemandSuccess(t, err)
	return st, rec
}

// emitLine produces one visible line with a single scan of four samples
func emitLine(t *testing.T, p *scantarget.Producer, y uint16) {
	t.Helper()

	p.Announce(scantarget.EventEndHorizontalRetrace, true, scantarget.EndPoint{X: 0, Y: y}, 0)

	d := p.BeginData(4, 1)
	test.DemandEquality(t, d != nil, true)
	for i := range d {
		d[i] = byte(i + 1)
	}
	p.EndData(4)

	s := p.BeginScan()
	test.DemandEquality(t, s != nil, true)
	s.EndPoints[0] = scantarget.EndPoint{X: 0, Y: y, CyclesSinceEndOfHorizontalRetrace: 0}
	s.EndPoints[1] = scantarget.EndPoint{X: 200, Y: y, DataOffset: 4, CyclesSinceEndOfHorizontalRetrace: 200}
	p.EndScan()

	p.Announce(scantarget.EventBeginHorizontalRetrace, false, scantarget.EndPoint{X: 200, Y: y}, 0)
}

// emitFrame produces the end of vertical retrace followed by the specified
// number of lines
func emitFrame(t *testing.T, p *scantarget.Producer, lines int) {
	t.Helper()
	p.Announce(scantarget.EventEndVerticalRetrace, false, scantarget.EndPoint{}, 0)
	for i := 0; i < lines; i++ {
		emitLine(t, p, uint16(i*2))
	}
}

// handles of the resources created by NewScanTarget()
func scanBuffer(rec *recorder.Recorder) gpu.Buffer {
	return gpu.Buffer(rec.OpsOfKind(recorder.NewVertexBuffer)[0].Handle)
}

func lineBuffer(rec *recorder.Recorder) gpu.Buffer {
	return gpu.Buffer(rec.OpsOfKind(recorder.NewVertexBuffer)[1].Handle)
}

// writes to a single buffer
func bufferWrites(rec *recorder.Recorder, b gpu.Buffer) []recorder.Op {
	var ops []recorder.Op
	for _, op := range rec.OpsOfKind(recorder.WriteBuffer) {
		if op.Handle == uint32(b) {
			ops = append(ops, op)
		}
	}
	return ops
}

// draws from a single buffer
func bufferDraws(rec *recorder.Recorder, b gpu.Buffer) []recorder.Op {
	var ops []recorder.Op
	for _, op := range rec.OpsOfKind(recorder.DrawInstanced) {
		if op.Handle == uint32(b) {
			ops = append(ops, op)
		}
	}
	return ops
}
