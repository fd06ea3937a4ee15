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

package scantarget

import (
	"errors"
	"fmt"
)

// InputDataType is the format of the samples written by the producer
type InputDataType int

// List of valid InputDataType values
const (
	// one byte per sample, zero or non-zero
	Luminance1 InputDataType = iota

	// one byte per sample, 0 to 255
	Luminance8

	// four luminance bytes per sample. the byte used depends on the phase of
	// the colour subcarrier
	PhaseLinkedLuminance8

	// two bytes per sample, luminance and the phase of the chrominance. a
	// phase of 255 indicates no chrominance
	Luminance8Phase8

	// one byte per sample with bits 0b00000rgb
	Red1Green1Blue1

	// one byte per sample with bits 0b00rrggbb
	Red2Green2Blue2

	// two bytes per sample with bits 0b0000rrrr 0bggggbbbb
	Red4Green4Blue4

	// four bytes per sample, red, green, blue and one unused byte
	Red8Green8Blue8
)

// Depth returns the number of bytes per sample for the data type
func (t InputDataType) Depth() int {
	switch t {
	case Luminance1, Luminance8, Red1Green1Blue1, Red2Green2Blue2:
		return 1
	case Luminance8Phase8, Red4Green4Blue4:
		return 2
	case PhaseLinkedLuminance8, Red8Green8Blue8:
		return 4
	}
	return 0
}

func (t InputDataType) String() string {
	switch t {
	case Luminance1:
		return "Luminance1"
	case Luminance8:
		return "Luminance8"
	case PhaseLinkedLuminance8:
		return "PhaseLinkedLuminance8"
	case Luminance8Phase8:
		return "Luminance8Phase8"
	case Red1Green1Blue1:
		return "Red1Green1Blue1"
	case Red2Green2Blue2:
		return "Red2Green2Blue2"
	case Red4Green4Blue4:
		return "Red4Green4Blue4"
	case Red8Green8Blue8:
		return "Red8Green8Blue8"
	}
	return "unknown data type"
}

// isRGB is true if the data type carries red, green and blue channels
func (t InputDataType) isRGB() bool {
	switch t {
	case Red1Green1Blue1, Red2Green2Blue2, Red4Green4Blue4, Red8Green8Blue8:
		return true
	}
	return false
}

// DisplayType is the type of connection being emulated
type DisplayType int

// List of valid DisplayType values
const (
	RGB DisplayType = iota
	SVideo
	CompositeColour
	CompositeMonochrome
)

func (t DisplayType) String() string {
	switch t {
	case RGB:
		return "RGB"
	case SVideo:
		return "SVideo"
	case CompositeColour:
		return "CompositeColour"
	case CompositeMonochrome:
		return "CompositeMonochrome"
	}
	return "unknown display type"
}

// ColourSpace is used to encode and decode composite and S-Video signals
type ColourSpace int

// List of valid ColourSpace values
const (
	YIQ ColourSpace = iota
	YUV
)

func (c ColourSpace) String() string {
	switch c {
	case YIQ:
		return "YIQ"
	case YUV:
		return "YUV"
	}
	return "unknown colour space"
}

// Rect is an area of signal space
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Scale is applied to signal space positions
type Scale struct {
	X float32
	Y float32
}

// Modals describe the signal being produced. They change infrequently, usually
// only when the emulated machine is started or reconfigured
type Modals struct {
	InputDataType        InputDataType
	DisplayType          DisplayType
	CompositeColourSpace ColourSpace

	// the colour subcarrier completes numerator/denominator cycles per line
	ColourCycleNumerator   int
	ColourCycleDenominator int

	CyclesPerLine                       int
	ClocksPerPixelGreatestCommonDivisor int
	ExpectedVerticalLines               int

	// the area of signal space that is visible. signal space positions are
	// divided by OutputScale before being compared to the visible area
	VisibleArea Rect
	OutputScale Scale

	IntendedGamma float32
	Brightness    float32

	// offset applied to the phase of PhaseLinkedLuminance8 data
	PhaseLinkedLuminanceOffset float32
}

// ErrModals is returned by SetModals() for modals that cannot be used
var ErrModals = errors.New("invalid modals")

// Validate returns an error wrapping ErrModals if the modals cannot be used
func (m Modals) Validate() error {
	if m.InputDataType.Depth() == 0 {
		return fmt.Errorf("%w: input data type %d", ErrModals, m.InputDataType)
	}
	if m.DisplayType < RGB || m.DisplayType > CompositeMonochrome {
		return fmt.Errorf("%w: display type %d", ErrModals, m.DisplayType)
	}
	if m.CompositeColourSpace != YIQ && m.CompositeColourSpace != YUV {
		return fmt.Errorf("%w: colour space %d", ErrModals, m.CompositeColourSpace)
	}
	if m.CyclesPerLine <= 0 || m.ClocksPerPixelGreatestCommonDivisor <= 0 {
		return fmt.Errorf("%w: line timing %d/%d", ErrModals, m.CyclesPerLine, m.ClocksPerPixelGreatestCommonDivisor)
	}
	if m.ExpectedVerticalLines <= 0 {
		return fmt.Errorf("%w: expected vertical lines %d", ErrModals, m.ExpectedVerticalLines)
	}
	if m.DisplayType != RGB && (m.ColourCycleNumerator <= 0 || m.ColourCycleDenominator <= 0) {
		return fmt.Errorf("%w: colour cycle %d/%d", ErrModals, m.ColourCycleNumerator, m.ColourCycleDenominator)
	}
	if m.VisibleArea.Width <= 0 || m.VisibleArea.Height <= 0 {
		return fmt.Errorf("%w: visible area %.2fx%.2f", ErrModals, m.VisibleArea.Width, m.VisibleArea.Height)
	}
	if m.OutputScale.X == 0 || m.OutputScale.Y == 0 {
		return fmt.Errorf("%w: output scale", ErrModals)
	}
	if m.IntendedGamma <= 0 {
		return fmt.Errorf("%w: intended gamma %.2f", ErrModals, m.IntendedGamma)
	}
	return nil
}

// processingWidth is the minimum width needed to combine samples from the
// input without losing detail
func (m Modals) processingWidth() int {
	return m.CyclesPerLine / m.ClocksPerPixelGreatestCommonDivisor
}
