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

package testcard

import (
	"image/color"
	"testing"

	"github.com/jetsetilly/scanout/test"
)

func TestSample(t *testing.T) {
	c := &Card{spec: SpecNTSC}

	test.ExpectEquality(t, c.sample(0, 0), bars[0])
	test.ExpectEquality(t, c.sample(0, HorizClksVisible-1), bars[len(bars)-1])

	// greyscale ramp
	row := SpecNTSC.ScanlinesVisible - 1
	test.ExpectEquality(t, c.sample(row, 0), color.RGBA{})
	test.ExpectEquality(t, c.sample(row, HorizClksVisible-1), color.RGBA{R: 255, G: 255, B: 255})

	// the block moves two clocks every frame
	row = SpecNTSC.ScanlinesVisible - blockSize*2
	test.ExpectEquality(t, c.sample(row, 0), color.RGBA{R: 255, G: 255, B: 255})
	c.frame = 1
	test.ExpectEquality(t, c.sample(row, 0), color.RGBA{})
	test.ExpectEquality(t, c.sample(row, 2), color.RGBA{R: 255, G: 255, B: 255})
}
