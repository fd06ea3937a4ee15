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
	"strings"
	"testing"

	"github.com/jetsetilly/scanout/test"
)

func testModals() Modals {
	return Modals{
		InputDataType:                       Luminance8,
		DisplayType:                         RGB,
		CyclesPerLine:                       228,
		ClocksPerPixelGreatestCommonDivisor: 1,
		ExpectedVerticalLines:               262,
		ColourCycleNumerator:                228,
		ColourCycleDenominator:              1,
		VisibleArea:                         Rect{Width: 228, Height: 262},
		OutputScale:                         Scale{X: 1, Y: 1},
		IntendedGamma:                       2.2,
		Brightness:                          1.0,
	}
}

func TestCompositionSource(t *testing.T) {
	m := testModals()
	for d := Luminance1; d <= Red8Green8Blue8; d++ {
		m.InputDataType = d
		vertex, fragment := compositionSource(m, 2048)
		test.ExpectSuccess(t, strings.Contains(vertex, "vec2(2048.0, 2048.0)"), d)
		test.ExpectSuccess(t, strings.Contains(fragment, "fragColour ="), d)
		test.ExpectSuccess(t, strings.HasSuffix(fragment, "}"), d)
	}
}

func TestConversionSource(t *testing.T) {
	m := testModals()

	_, fragment := conversionSource(m, 2.2)
	test.ExpectFailure(t, strings.Contains(fragment, "textureWeights"))
	test.ExpectFailure(t, strings.Contains(fragment, "pow("))
	test.ExpectFailure(t, strings.Contains(fragment, "fragColour3 * "))

	m.DisplayType = CompositeColour
	for d := Luminance1; d <= Red8Green8Blue8; d++ {
		m.InputDataType = d
		vertex, fragment := conversionSource(m, 2.2)
		test.ExpectSuccess(t, strings.Contains(vertex, "textureCoordinates[15]"), d)
		test.ExpectSuccess(t, strings.Contains(fragment, "float compositeSample("), d)
		test.ExpectSuccess(t, strings.Contains(fragment, "textureWeights[i]"), d)
	}

	m.DisplayType = SVideo
	_, fragment = conversionSource(m, 2.2)
	test.ExpectSuccess(t, strings.Contains(fragment, "vec2 svideoSample("))

	m.DisplayType = CompositeMonochrome
	vertex, fragment := conversionSource(m, 2.2)
	test.ExpectSuccess(t, strings.Contains(vertex, "out vec2 textureCoordinate;"))
	test.ExpectFailure(t, strings.Contains(vertex, "textureCoordinates"))
	test.ExpectSuccess(t, strings.Contains(fragment, "vec3(compositeSample(textureCoordinate, compositeAngle))"))
}

func TestConversionAdjustments(t *testing.T) {
	m := testModals()

	// small differences are ignored
	m.Brightness = 1.04
	_, fragment := conversionSource(m, 2.22)
	test.ExpectFailure(t, strings.Contains(fragment, "fragColour3 * "))
	test.ExpectFailure(t, strings.Contains(fragment, "pow("))

	m.Brightness = 0.5
	m.IntendedGamma = 2.8
	_, fragment = conversionSource(m, 2.2)
	test.ExpectSuccess(t, strings.Contains(fragment, "fragColour3 = fragColour3 * 0.500000;"))
	test.ExpectSuccess(t, strings.Contains(fragment, "pow(fragColour3, vec3(0.785714))"))

	// brightness is applied before gamma
	test.ExpectSuccess(t, strings.Index(fragment, "* 0.500000") < strings.Index(fragment, "pow("))
}

func TestTextureCoordinateOffsets(t *testing.T) {
	m := testModals()

	// one colour cycle per clock
	offsets := textureCoordinateOffsets(m)
	test.DemandEquality(t, len(offsets), conversionTaps)
	test.ExpectEquality(t, offsets[0], float32(-1.75))
	test.ExpectEquality(t, offsets[7], float32(0.0))
	test.ExpectEquality(t, offsets[14], float32(1.75))

	// two clocks per colour cycle
	m.ColourCycleNumerator = 114
	offsets = textureCoordinateOffsets(m)
	test.ExpectEquality(t, offsets[8], float32(0.5))
}
