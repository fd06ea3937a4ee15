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

func TestToroidDimensions(t *testing.T) {
	for _, d := range [][2]int{{500, 4}, {512, 3}, {1, 512}, {0, 0}} {
		_, err := scantarget.NewToroid(d[0], d[1])
		test.ExpectSuccess(t, errors.Is(err, scantarget.ErrDimensions), d)
	}

	tor, err := scantarget.NewToroid(2048, 2048)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tor.Size(), 2048*2048)
}

func TestToroidAddressing(t *testing.T) {
	tor, err := scantarget.NewToroid(512, 4)
	test.DemandSuccess(t, err)

	a := tor.Address(5, 2)
	test.ExpectEquality(t, uint32(a), uint32(2*512+5))
	test.ExpectEquality(t, tor.X(a), 5)
	test.ExpectEquality(t, tor.Y(a), 2)

	// a column equal to the width is the start of the next row
	test.ExpectEquality(t, tor.Address(512, 0), tor.Address(0, 1))

	// the row after the last row is the first row
	test.ExpectEquality(t, tor.Address(0, 4), scantarget.Address(0))
	test.ExpectEquality(t, tor.Address(3, 5), tor.Address(3, 1))
}

func TestToroidArithmetic(t *testing.T) {
	tor, err := scantarget.NewToroid(512, 4)
	test.DemandSuccess(t, err)

	last := tor.Address(511, 3)
	test.ExpectEquality(t, tor.Add(last, 1), scantarget.Address(0))
	test.ExpectEquality(t, tor.Add(last, 3), tor.Address(2, 0))

	// distances are always measured forwards
	test.ExpectEquality(t, tor.Sub(tor.Address(1, 0), last), uint32(2))
	test.ExpectEquality(t, tor.Sub(last, tor.Address(1, 0)), uint32(2046))
	test.ExpectEquality(t, tor.Sub(last, last), uint32(0))
}
