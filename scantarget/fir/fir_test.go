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

package fir_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jetsetilly/scanout/scantarget/fir"
	"github.com/jetsetilly/scanout/test"
)

func TestLowPass(t *testing.T) {
	flt, err := fir.New(15, 8.0, 0.0, 1.0)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, flt.Taps(), 15)

	c := flt.Coefficients()
	test.DemandEquality(t, len(c), 15)

	// coefficients sum to one
	var sum float32
	for _, v := range c {
		sum += v
	}
	test.ExpectApproximate(t, sum, 1.0, 0.0001)

	// filter is symmetric and peaks in the centre
	for i := 0; i < 7; i++ {
		test.ExpectApproximate(t, c[i], c[14-i], 0.0001, i)
		test.ExpectSuccess(t, c[7] > c[i], i)
	}
}

func TestApply(t *testing.T) {
	flt, err := fir.New(15, 8.0, 0.0, 1.0)
	test.DemandSuccess(t, err)

	// a constant signal is unchanged by a normalised low pass filter
	dc := make([]float64, 64)
	for i := range dc {
		dc[i] = 0.5
	}
	test.ExpectApproximate(t, flt.Apply(dc, 32), 0.5, 0.0001)

	// a signal at the nyquist frequency is mostly removed
	nyquist := make([]float64, 64)
	for i := range nyquist {
		nyquist[i] = math.Cos(math.Pi * float64(i))
	}
	test.ExpectSuccess(t, math.Abs(flt.Apply(nyquist, 32)) < 0.01)
}

func TestBadParameters(t *testing.T) {
	_, err := fir.New(14, 8.0, 0.0, 1.0)
	test.ExpectSuccess(t, errors.Is(err, fir.ErrTaps))

	_, err = fir.New(1, 8.0, 0.0, 1.0)
	test.ExpectSuccess(t, errors.Is(err, fir.ErrTaps))

	_, err = fir.New(15, 8.0, 1.0, 1.0)
	test.ExpectSuccess(t, errors.Is(err, fir.ErrFrequency))

	_, err = fir.New(15, 8.0, 0.0, 5.0)
	test.ExpectSuccess(t, errors.Is(err, fir.ErrFrequency))
}
