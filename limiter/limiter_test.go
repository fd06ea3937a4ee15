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

package limiter_test

import (
	"testing"

	"github.com/jetsetilly/scanout/limiter"
	"github.com/jetsetilly/scanout/test"
)

// tolerance of measurement
const measurementTolerance = 0.05
const numFramesPerTest = 2

func TestTicker(t *testing.T) {
	lmtr := limiter.NewLimiter(60, nil)
	defer lmtr.Stop()

	for _, hz := range []float32{60.0, 50.0} {
		lmtr.SetLimit(hz)
		for n := int(hz * numFramesPerTest); n > 0; n-- {
			lmtr.CheckFrame()
			lmtr.MeasureActual()
		}
		test.ExpectApproximate(t, lmtr.Actual(), hz, measurementTolerance, hz)
	}
}

type display struct {
	hz       float32
	quantise bool
}

func (d display) DisplayRefreshRate() (float32, bool) {
	return d.hz, d.quantise
}

func TestQuantise(t *testing.T) {
	lmtr := limiter.NewLimiter(59.94, nil)
	defer lmtr.Stop()
	test.ExpectEquality(t, lmtr.Ideal(), float32(59.94))

	lmtr.SetDisplay(display{hz: 60, quantise: true})
	test.ExpectEquality(t, lmtr.Ideal(), float32(60))

	// rates too far from the display rate are not quantised
	lmtr.SetLimit(50)
	test.ExpectEquality(t, lmtr.Ideal(), float32(50))

	// display that doesn't want quantisation
	lmtr.SetDisplay(display{hz: 60, quantise: false})
	lmtr.SetLimit(59.94)
	test.ExpectEquality(t, lmtr.Ideal(), float32(59.94))
}

func TestNudge(t *testing.T) {
	lmtr := limiter.NewLimiter(1, nil)
	defer lmtr.Stop()

	// a nudged limiter does not wait. at one frame per second the test would
	// take ten seconds otherwise
	lmtr.Nudge.Store(10)
	for n := 0; n < 10; n++ {
		lmtr.CheckFrame()
	}
	test.ExpectEquality(t, lmtr.Nudge.Load(), int32(0))
}
