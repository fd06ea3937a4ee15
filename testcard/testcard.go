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

// Package testcard produces a test signal for a scan target. The signal
// contains colour bars, a greyscale ramp and a block that moves a little
// every frame.
package testcard

import (
	"image/color"
	"math"

	"github.com/jetsetilly/scanout/limiter"
	"github.com/jetsetilly/scanout/scantarget"
)

// colour bars at 75% intensity
var bars = []color.RGBA{
	{R: 191, G: 191, B: 191},
	{R: 191, G: 191, B: 0},
	{R: 0, G: 191, B: 191},
	{R: 0, G: 191, B: 0},
	{R: 191, G: 0, B: 191},
	{R: 191, G: 0, B: 0},
	{R: 0, G: 0, B: 191},
	{R: 0, G: 0, B: 0},
}

// size of the moving block in clocks and scanlines
const blockSize = 16

// amplitude of the colour burst for displays that decode colour
const colourBurst = 64

// Card is the producer of the test signal. It should be used from a single
// goroutine
type Card struct {
	spec Spec
	p    *scantarget.Producer

	amplitude uint8

	// the number of completed frames
	frame int

	// phase of the colour subcarrier at the start of the scanline in cycles
	phase float64
}

// NewCard is the preferred method of initialisation for the Card type. The
// modals of the scan target are set for the specification and display type
func NewCard(st *scantarget.ScanTarget, p *scantarget.Producer, spec Spec, display scantarget.DisplayType) (*Card, error) {
	err := st.SetModals(spec.Modals(display))
	if err != nil {
		return nil, err
	}

	c := &Card{
		spec: spec,
		p:    p,
	}

	if display == scantarget.CompositeColour || display == scantarget.SVideo {
		c.amplitude = colourBurst
	}

	return c, nil
}

// Frames returns the number of completed frames
func (c *Card) Frames() int {
	return c.frame
}

// Frame produces one complete frame. The work is submitted at the end of
// every scanline
func (c *Card) Frame() {
	c.p.Announce(scantarget.EventEndVerticalRetrace, false, scantarget.EndPoint{}, 0)

	cycles := float64(c.spec.ColourCycleNumerator) / float64(c.spec.ColourCycleDenominator)

	for sl := 0; sl < c.spec.ScanlinesTotal; sl++ {
		if sl >= c.spec.ScanlineTop && sl < c.spec.ScanlineBottom {
			c.scanline(sl, cycles)
		}
		_, c.phase = math.Modf(c.phase + cycles)
		c.p.Submit()
	}

	c.frame++
}

// Run produces frames until the quit channel is closed. The limiter can be
// nil, in which case frames are produced as quickly as possible
func (c *Card) Run(quit <-chan struct{}, lmtr *limiter.Limiter) {
	for {
		select {
		case <-quit:
			return
		default:
		}

		c.Frame()

		if lmtr != nil {
			lmtr.CheckFrame()
			lmtr.MeasureActual()
		}
	}
}

func (c *Card) scanline(sl int, cycles float64) {
	// composite angles are in 64ths of a colour cycle
	angle := func(clk int) int16 {
		return int16((c.phase + float64(clk)*cycles/HorizClksScanline) * 64.0)
	}

	start := scantarget.EndPoint{
		X:                                 HorizClksHBlank,
		Y:                                 uint16(sl),
		CompositeAngle:                    angle(HorizClksHBlank),
		CyclesSinceEndOfHorizontalRetrace: HorizClksHBlank,
	}
	end := scantarget.EndPoint{
		X:                                 HorizClksScanline,
		Y:                                 uint16(sl),
		DataOffset:                        HorizClksVisible,
		CompositeAngle:                    angle(HorizClksScanline),
		CyclesSinceEndOfHorizontalRetrace: HorizClksScanline,
	}

	c.p.Announce(scantarget.EventEndHorizontalRetrace, true, start, c.amplitude)

	// a failed allocation fails the batch. the next allocation to succeed
	// will be after the next submit
	d := c.p.BeginData(HorizClksVisible, 1)
	if d != nil {
		row := sl - c.spec.ScanlineTop
		for x := 0; x < HorizClksVisible; x++ {
			col := c.sample(row, x)
			d[x*4] = col.R
			d[x*4+1] = col.G
			d[x*4+2] = col.B
			d[x*4+3] = 0
		}
		c.p.EndData(HorizClksVisible)
	}

	if s := c.p.BeginScan(); s != nil {
		s.EndPoints[0] = start
		s.EndPoints[1] = end
		s.CompositeAmplitude = c.amplitude
		c.p.EndScan()
	}

	c.p.Announce(scantarget.EventBeginHorizontalRetrace, false, end, c.amplitude)
}

// sample returns the colour of the picture at the row and column. the top
// two thirds of the picture are the colour bars and the bottom third is the
// greyscale ramp
func (c *Card) sample(row int, x int) color.RGBA {
	bx := (c.frame * 2) % (HorizClksVisible - blockSize)
	by := c.spec.ScanlinesVisible - blockSize*2
	if x >= bx && x < bx+blockSize && row >= by && row < by+blockSize {
		return color.RGBA{R: 255, G: 255, B: 255}
	}

	if row < c.spec.ScanlinesVisible*2/3 {
		return bars[x*len(bars)/HorizClksVisible]
	}

	v := uint8(x * 255 / (HorizClksVisible - 1))
	return color.RGBA{R: v, G: v, B: v}
}
