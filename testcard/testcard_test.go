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

package testcard_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/scanout/gpu/recorder"
	"github.com/jetsetilly/scanout/scantarget"
	"github.com/jetsetilly/scanout/test"
	"github.com/jetsetilly/scanout/testcard"
)

func TestGetSpec(t *testing.T) {
	spec, err := testcard.GetSpec("ntsc")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, spec.ID, "NTSC")
	test.ExpectEquality(t, spec.ScanlineTop, 40)
	test.ExpectEquality(t, spec.ScanlineBottom, 232)

	spec, err = testcard.GetSpec(" PAL ")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, spec.ScanlineBottom-spec.ScanlineTop, spec.ScanlinesVisible)

	_, err = testcard.GetSpec("SECAM")
	test.ExpectSuccess(t, errors.Is(err, testcard.ErrUnknownSpec))

	for _, id := range testcard.SpecList {
		spec, err := testcard.GetSpec(id)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, spec.ScanlinesTotal,
			spec.ScanlinesVSync+spec.ScanlinesVBlank+spec.ScanlinesVisible+spec.ScanlinesOverscan)
		for _, d := range []scantarget.DisplayType{scantarget.RGB, scantarget.CompositeColour} {
			test.ExpectSuccess(t, spec.Modals(d).Validate())
		}
	}
}

func newCard(t *testing.T, spec testcard.Spec) (*testcard.Card, *scantarget.ScanTarget) {
	t.Helper()
	rec := recorder.NewRecorder(false)
	st, err := scantarget.NewScanTarget(rec, scantarget.DefaultOptions())
	test.DemandSuccess(t, err)
	c, err := testcard.NewCard(st, st.Producer(), spec, scantarget.CompositeColour)
	test.DemandSuccess(t, err)
	return c, st
}

func TestFrame(t *testing.T) {
	c, st := newCard(t, testcard.SpecNTSC)

	c.Frame()
	test.ExpectEquality(t, c.Frames(), 1)

	stats := st.Statistics()
	test.ExpectEquality(t, stats.Submitted, uint64(testcard.SpecNTSC.ScanlinesTotal))
	test.ExpectEquality(t, stats.Dropped, uint64(0))

	st.Draw(true, 640, 480)
	stats = st.Statistics()
	test.ExpectEquality(t, stats.Presented, uint64(1))
	test.ExpectEquality(t, stats.Scans, uint64(192))

	// the final line of the frame is still open
	test.ExpectEquality(t, stats.Lines, uint64(191))

	c.Frame()
	st.Draw(true, 640, 480)
	stats = st.Statistics()
	test.ExpectEquality(t, stats.Scans, uint64(384))
	test.ExpectEquality(t, stats.Lines, uint64(383))
	test.ExpectEquality(t, stats.Decays, uint64(1))
	test.ExpectEquality(t, stats.Dropped, uint64(0))
}

func TestFrameWithoutDraw(t *testing.T) {
	c, st := newCard(t, testcard.SpecPAL)

	// nothing is drawn so the rings eventually fill. work is dropped rather
	// than overwritten
	for i := 0; i < 20; i++ {
		c.Frame()
	}

	stats := st.Statistics()
	test.ExpectEquality(t, stats.Submitted+stats.Dropped, uint64(20*testcard.SpecPAL.ScanlinesTotal))
	test.ExpectEquality(t, stats.Dropped > 0, true)
}

func TestRun(t *testing.T) {
	c, _ := newCard(t, testcard.SpecNTSC)

	quit := make(chan struct{})
	close(quit)
	c.Run(quit, nil)
	test.ExpectEquality(t, c.Frames(), 0)
}
