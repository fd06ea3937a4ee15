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
	"errors"
	"fmt"
	"strings"

	"github.com/jetsetilly/scanout/scantarget"
)

// SpecList is the list of specifications that the test card can generate
var SpecList = []string{"NTSC", "PAL"}

// Spec defines the timing of a television signal
type Spec struct {
	ID string

	// the number of scanlines in each portion of the frame
	ScanlinesVSync    int
	ScanlinesVBlank   int
	ScanlinesVisible  int
	ScanlinesOverscan int

	// the total number of scanlines for the entire frame is the sum of the
	// four individual portions
	ScanlinesTotal int

	// the first visible scanline and the first scanline of the overscan
	//
	//	Top = VSync + VBlank
	//
	//	Bottom = Top + Visible
	ScanlineTop    int
	ScanlineBottom int

	// the number of frames per second required by the specification
	FramesPerSecond float32

	// the colour subcarrier completes numerator/denominator cycles per
	// scanline
	ColourCycleNumerator   int
	ColourCycleDenominator int

	ColourSpace scantarget.ColourSpace
}

// Every scanline starts with 68 clock counts of horizontal blank followed by
// 160 clock counts of picture. Horizontal clock counts are the same for all
// specifications
const (
	HorizClksHBlank   = 68
	HorizClksVisible  = 160
	HorizClksScanline = 228
)

// SpecNTSC is the specification for NTSC television types.
var SpecNTSC Spec

// SpecPAL is the specification for PAL television types.
var SpecPAL Spec

func init() {
	SpecNTSC = Spec{
		ID:                     "NTSC",
		ScanlinesVSync:         3,
		ScanlinesVBlank:        37,
		ScanlinesVisible:       192,
		ScanlinesOverscan:      30,
		ScanlinesTotal:         262,
		FramesPerSecond:        60.0,
		ColourCycleNumerator:   455,
		ColourCycleDenominator: 2,
		ColourSpace:            scantarget.YIQ,
	}

	SpecNTSC.ScanlineTop = SpecNTSC.ScanlinesVBlank + SpecNTSC.ScanlinesVSync
	SpecNTSC.ScanlineBottom = SpecNTSC.ScanlinesTotal - SpecNTSC.ScanlinesOverscan

	SpecPAL = Spec{
		ID:                     "PAL",
		ScanlinesVSync:         3,
		ScanlinesVBlank:        45,
		ScanlinesVisible:       228,
		ScanlinesOverscan:      36,
		ScanlinesTotal:         312,
		FramesPerSecond:        50.0,
		ColourCycleNumerator:   1135,
		ColourCycleDenominator: 4,
		ColourSpace:            scantarget.YUV,
	}

	SpecPAL.ScanlineTop = SpecPAL.ScanlinesVBlank + SpecPAL.ScanlinesVSync
	SpecPAL.ScanlineBottom = SpecPAL.ScanlinesTotal - SpecPAL.ScanlinesOverscan
}

// ErrUnknownSpec is returned by GetSpec() for an ID that isn't in SpecList
var ErrUnknownSpec = errors.New("unknown television specification")

// GetSpec returns the specification for the ID. The ID is not case sensitive
func GetSpec(id string) (Spec, error) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "NTSC":
		return SpecNTSC, nil
	case "PAL":
		return SpecPAL, nil
	}
	return Spec{}, fmt.Errorf("testcard: %w: %s", ErrUnknownSpec, id)
}

// Modals returns the scan target modals for the specification
func (spec Spec) Modals(display scantarget.DisplayType) scantarget.Modals {
	return scantarget.Modals{
		InputDataType:                       scantarget.Red8Green8Blue8,
		DisplayType:                         display,
		CompositeColourSpace:                spec.ColourSpace,
		ColourCycleNumerator:                spec.ColourCycleNumerator,
		ColourCycleDenominator:              spec.ColourCycleDenominator,
		CyclesPerLine:                       HorizClksScanline,
		ClocksPerPixelGreatestCommonDivisor: 1,
		ExpectedVerticalLines:               spec.ScanlinesTotal,

		// positions are in clocks and scanlines. the output scale brings them
		// into the range 0 to 1
		OutputScale: scantarget.Scale{
			X: HorizClksScanline,
			Y: float32(spec.ScanlinesTotal),
		},
		VisibleArea: scantarget.Rect{
			X:      float32(HorizClksHBlank) / HorizClksScanline,
			Y:      float32(spec.ScanlineTop) / float32(spec.ScanlinesTotal),
			Width:  float32(HorizClksVisible) / HorizClksScanline,
			Height: float32(spec.ScanlinesVisible) / float32(spec.ScanlinesTotal),
		},

		IntendedGamma: 2.2,
		Brightness:    1.0,
	}
}
