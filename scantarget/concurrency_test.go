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
	"io"
	"testing"

	"github.com/jetsetilly/scanout/scantarget"
	"github.com/jetsetilly/scanout/test"
)

// produce emits the specified number of frames, submitting after each one.
// returns the number of scans in batches that were not dropped. it does not
// use the testing.T instance because it runs outside of the test goroutine
func produce(p *scantarget.Producer, frames int, lines int) uint64 {
	var scans uint64

	for f := 0; f < frames; f++ {
		var batch uint64

		p.Announce(scantarget.EventEndVerticalRetrace, false, scantarget.EndPoint{}, 0)
		for l := 0; l < lines; l++ {
			y := uint16(l * 2)
			p.Announce(scantarget.EventEndHorizontalRetrace, true, scantarget.EndPoint{Y: y}, 0)

			if d := p.BeginData(4, 1); d != nil {
				for i := range d {
					d[i] = byte(f + i)
				}
				p.EndData(4)
			}

			if s := p.BeginScan(); s != nil {
				s.EndPoints[0] = scantarget.EndPoint{X: 0, Y: y}
				s.EndPoints[1] = scantarget.EndPoint{X: 200, Y: y, DataOffset: 4, CyclesSinceEndOfHorizontalRetrace: 200}
				p.EndScan()
				batch++
			}

			p.Announce(scantarget.EventBeginHorizontalRetrace, false, scantarget.EndPoint{X: 200, Y: y}, 0)
		}

		if !p.Failed() {
			scans += batch
		}
		p.Submit()
	}

	return scans
}

func TestConcurrentDraw(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	var scans uint64
	done := make(chan bool)
	go func() {
		defer close(done)
		scans = produce(p, 200, 6)
	}()

	var previous uint64
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		st.Draw(true, 640, 480)

		n := st.Statistics().Scans
		test.ExpectSuccess(t, n >= previous)
		previous = n
	}

	// everything submitted before the producer finished is drawn by this pass
	st.Draw(true, 640, 480)
	s := st.State()
	test.ExpectEquality(t, s.Read, s.Submit)
	test.ExpectInequality(t, scans, 0)
	test.ExpectEquality(t, s.Statistics.Scans, scans)
	test.ExpectEquality(t, s.Statistics.Submitted+s.Statistics.Dropped, uint64(200))
}

func TestStateWhileProducing(t *testing.T) {
	st, _ := newTarget(t, smallOptions())
	test.DemandSuccess(t, st.SetModals(luminanceModals()))
	p := st.Producer()

	var final scantarget.State
	var position scantarget.Pointers
	done := make(chan bool)
	go func() {
		defer close(done)
		_ = produce(p, 100, 6)
		final = p.State()
		position = p.Position()
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}

		// the producer's private state is never part of this view
		s := st.State()
		test.ExpectEquality(t, s.Producer == nil, true)
		test.ExpectSuccess(t, s.ModalsSet)
		st.DumpState(io.Discard)

		st.Draw(false, 640, 480)
	}

	// the producer's own view includes its private state
	test.DemandEquality(t, final.Producer != nil, true)
	test.ExpectEquality(t, final.Producer.Write, position)
}
