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

// Package fir designs finite impulse response filters using the Kaiser window
// method. It is used to generate the sample weights applied by the conversion
// program when decoding composite and S-Video signals.
package fir

import (
	"errors"
	"fmt"
	"math"
)

// DefaultAttenuation is the stop band attenuation, in decibels, used by New()
const DefaultAttenuation = 60.0

// Sentinel errors returned by New()
var (
	ErrTaps      = errors.New("number of taps must be odd and at least three")
	ErrFrequency = errors.New("frequencies must satisfy 0 <= low < high <= rate/2")
)

// Filter is a list of coefficients. The filter is symmetric, so the centre
// coefficient is at index len()/2
type Filter struct {
	coefficients []float64
}

// New designs a band pass filter with the number of taps. Frequencies are
// relative to the sample rate. A low frequency of zero results in a low pass
// filter.
//
// Coefficients are normalised so that they sum to one.
func New(taps int, rate float64, low float64, high float64) (*Filter, error) {
	return NewWithAttenuation(taps, rate, low, high, DefaultAttenuation)
}

// NewWithAttenuation is the same as New() but with a specified stop band
// attenuation in decibels
func NewWithAttenuation(taps int, rate float64, low float64, high float64, attenuation float64) (*Filter, error) {
	if taps < 3 || taps%2 == 0 {
		return nil, fmt.Errorf("fir: %w: %d", ErrTaps, taps)
	}
	if low < 0 || low >= high || high > rate/2 {
		return nil, fmt.Errorf("fir: %w: %.3f %.3f %.3f", ErrFrequency, low, high, rate)
	}

	beta := kaiserBeta(attenuation)
	centre := taps / 2

	flt := &Filter{
		coefficients: make([]float64, taps),
	}

	// ideal band pass impulse response
	ideal := func(i int) float64 {
		if i == 0 {
			return 2.0 * (high - low) / rate
		}
		n := float64(i)
		return (math.Sin(2.0*math.Pi*n*high/rate) - math.Sin(2.0*math.Pi*n*low/rate)) / (math.Pi * n)
	}

	var sum float64
	i0beta := besselI0(beta)
	for i := 0; i < taps; i++ {
		n := float64(i-centre) / float64(centre)
		w := besselI0(beta*math.Sqrt(1.0-n*n)) / i0beta
		flt.coefficients[i] = ideal(i-centre) * w
		sum += flt.coefficients[i]
	}

	for i := range flt.coefficients {
		flt.coefficients[i] /= sum
	}

	return flt, nil
}

// Coefficients returns a copy of the filter coefficients as float32 values
// suitable for use as a uniform
func (flt *Filter) Coefficients() []float32 {
	c := make([]float32, len(flt.coefficients))
	for i, v := range flt.coefficients {
		c[i] = float32(v)
	}
	return c
}

// Taps returns the number of coefficients in the filter
func (flt *Filter) Taps() int {
	return len(flt.coefficients)
}

// Apply the filter to the samples centred on index i. Samples outside the
// range of the slice are treated as zero
func (flt *Filter) Apply(samples []float64, i int) float64 {
	var v float64
	centre := len(flt.coefficients) / 2
	for c, w := range flt.coefficients {
		j := i + c - centre
		if j >= 0 && j < len(samples) {
			v += samples[j] * w
		}
	}
	return v
}

func kaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > 50.0:
		return 0.1102 * (attenuation - 8.7)
	case attenuation >= 21.0:
		return 0.5842*math.Pow(attenuation-21.0, 0.4) + 0.07886*(attenuation-21.0)
	}
	return 0.0
}

// besselI0 is the zeroth order modified Bessel function of the first kind
func besselI0(x float64) float64 {
	const epsilon = 1e-21

	sum := 1.0
	term := 1.0
	halfx := x / 2.0
	for k := 1; k < 500; k++ {
		t := halfx / float64(k)
		term *= t * t
		sum += term
		if term < epsilon*sum {
			break
		}
	}
	return sum
}
