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
	"fmt"
	"math"
	"strings"
)

// composition program draws scans into the unprocessed line buffer. one row
// of the buffer per line, with samples positioned by clock
func compositionSource(m Modals, lineCapacity int) (string, string) {
	vertex := fmt.Sprintf(`#version 150

in float startDataX;
in float startClock;
in float endDataX;
in float endClock;
in float dataY;
in float lineY;

out vec2 textureCoordinate;
uniform usampler2D textureName;

void main(void) {
	float lateral = float(gl_VertexID & 1);
	float longitudinal = float((gl_VertexID & 2) >> 1);

	textureCoordinate = vec2(mix(startDataX, endDataX, lateral), dataY + 0.5) / vec2(textureSize(textureName, 0));
	vec2 eyePosition = vec2(mix(startClock, endClock, lateral), lineY + longitudinal) / vec2(%d.0, %d.0);
	gl_Position = vec4(eyePosition*2.0 - vec2(1.0), 0.0, 1.0);
}`, lineBufferWidth, lineCapacity)

	var s strings.Builder
	s.WriteString(`#version 150

out vec4 fragColour;
in vec2 textureCoordinate;
uniform usampler2D textureName;

void main(void) {
`)

	switch m.InputDataType {
	case Luminance1:
		s.WriteString("	fragColour = vec4(min(textureLod(textureName, textureCoordinate, 0.0).rrrr, uvec4(1u)));\n")
	case Luminance8:
		s.WriteString("	fragColour = vec4(textureLod(textureName, textureCoordinate, 0.0).rrrr) / vec4(255.0);\n")
	case PhaseLinkedLuminance8, Luminance8Phase8, Red8Green8Blue8:
		s.WriteString("	fragColour = vec4(textureLod(textureName, textureCoordinate, 0.0)) / vec4(255.0);\n")
	case Red1Green1Blue1:
		s.WriteString("	fragColour = vec4(notEqual(textureLod(textureName, textureCoordinate, 0.0).rrr & uvec3(4u, 2u, 1u), uvec3(0u)), 1.0);\n")
	case Red2Green2Blue2:
		s.WriteString(`	uint textureValue = textureLod(textureName, textureCoordinate, 0.0).r;
	fragColour = vec4(float((textureValue >> 4) & 3u), float((textureValue >> 2) & 3u), float(textureValue & 3u), 3.0) / 3.0;
`)
	case Red4Green4Blue4:
		s.WriteString(`	uvec2 textureValue = textureLod(textureName, textureCoordinate, 0.0).rg;
	fragColour = vec4(float(textureValue.r) / 15.0, float(textureValue.g & 240u) / 240.0, float(textureValue.g & 15u) / 15.0, 1.0);
`)
	}
	s.WriteString("}")

	return vertex, s.String()
}

// number of samples taken by the conversion program for the decoding of
// composite and S-Video signals
const conversionTaps = 15

// conversion program draws lines from the unprocessed line buffer into the
// accumulation buffer, decoding the signal to RGB as required
func conversionSource(m Modals, outputGamma float32) (string, string) {
	var v strings.Builder
	var f strings.Builder

	v.WriteString(`#version 150

uniform vec2 scale;
uniform float rowHeight;

in vec2 startPoint;
in vec2 endPoint;
in float startClock;
in float startCompositeAngle;
in float endClock;
in float endCompositeAngle;
in float lineY;
in float lineCompositeAmplitude;

uniform sampler2D textureName;
uniform vec2 origin;
uniform vec2 size;
`)

	f.WriteString(`#version 150

uniform sampler2D textureName;
uniform float phaseOffset;
out vec4 fragColour;
`)

	if m.DisplayType != RGB {
		v.WriteString(`
out float compositeAngle;
out float compositeAmplitude;
out float oneOverCompositeAmplitude;
uniform float textureCoordinateOffsets[15];
`)
		f.WriteString(`
in float compositeAngle;
in float compositeAmplitude;
in float oneOverCompositeAmplitude;
uniform float textureWeights[15];
uniform mat3 lumaChromaToRGB;
uniform mat3 rgbToLumaChroma;
`)
	}

	switch m.DisplayType {
	case RGB, CompositeMonochrome:
		v.WriteString("out vec2 textureCoordinate;\n")
		f.WriteString("in vec2 textureCoordinate;\n")
	case CompositeColour, SVideo:
		v.WriteString("out vec2 textureCoordinates[15];\n")
		f.WriteString("in vec2 textureCoordinates[15];\n")
	}

	// geometry is the same for all display types
	v.WriteString(`
void main(void) {
	float lateral = float(gl_VertexID & 1);
	float longitudinal = float((gl_VertexID & 2) >> 1);
	vec2 centrePoint = mix(startPoint, vec2(endPoint.x, startPoint.y), lateral) / scale;
	vec2 height = normalize(vec2(endPoint.x, startPoint.y) - startPoint).yx * (longitudinal - 0.5) * rowHeight;
	vec2 eyePosition = vec2(-1.0, 1.0) + vec2(2.0, -2.0) * (((centrePoint + height) - origin) / size);
	gl_Position = vec4(eyePosition, 0.0, 1.0);
`)

	if m.DisplayType != RGB {
		v.WriteString(`
	compositeAngle = (mix(startCompositeAngle, endCompositeAngle, lateral) / 32.0) * 3.141592654;
	compositeAmplitude = lineCompositeAmplitude / 255.0;
	oneOverCompositeAmplitude = mix(0.0, 255.0 / lineCompositeAmplitude, step(0.01, lineCompositeAmplitude));
`)
	}

	switch m.DisplayType {
	case RGB, CompositeMonochrome:
		v.WriteString("	textureCoordinate = vec2(mix(startClock, endClock, lateral), lineY + 0.5) / vec2(textureSize(textureName, 0));\n")
	case CompositeColour, SVideo:
		v.WriteString(`	float centreClock = mix(startClock, endClock, lateral);
	for (int i = 0; i < 15; ++i) {
		textureCoordinates[i] = vec2(centreClock + textureCoordinateOffsets[i], lineY + 0.5) / vec2(textureSize(textureName, 0));
	}
`)
	}
	v.WriteString("}")

	// sampling functions
	switch m.DisplayType {
	case SVideo:
		f.WriteString("\nvec2 svideoSample(vec2 coordinate, float angle) {\n")
		switch {
		case m.InputDataType == Luminance1 || m.InputDataType == Luminance8:
			f.WriteString("	return vec2(textureLod(textureName, coordinate, 0.0).r, 0.0);\n")
		case m.InputDataType == PhaseLinkedLuminance8:
			f.WriteString(`	uint iPhase = uint((angle * 2.0 / 3.141592654) + phaseOffset*4.0) & 3u;
	return vec2(textureLod(textureName, coordinate, 0.0)[iPhase], 0.0);
`)
		case m.InputDataType == Luminance8Phase8:
			f.WriteString(`	vec2 yc = textureLod(textureName, coordinate, 0.0).rg;
	float chromaPhase = 3.141592654 * 2.0 * 2.0 * yc.y;
	float rawChroma = step(yc.y, 0.75) * cos(angle + chromaPhase);
	return vec2(yc.x, rawChroma);
`)
		case m.InputDataType.isRGB():
			f.WriteString(`	vec3 colour = rgbToLumaChroma * textureLod(textureName, coordinate, 0.0).rgb;
	vec2 quadrature = vec2(cos(angle), sin(angle));
	return vec2(colour.r, dot(quadrature, colour.gb));
`)
		}
		f.WriteString("}\n")

	case CompositeColour, CompositeMonochrome:
		f.WriteString("\nfloat compositeSample(vec2 coordinate, float angle) {\n")
		switch {
		case m.InputDataType == Luminance1 || m.InputDataType == Luminance8:
			f.WriteString("	return textureLod(textureName, coordinate, 0.0).r;\n")
		case m.InputDataType == PhaseLinkedLuminance8:
			f.WriteString(`	uint iPhase = uint((angle * 2.0 / 3.141592654) + phaseOffset*4.0) & 3u;
	return textureLod(textureName, coordinate, 0.0)[iPhase];
`)
		case m.InputDataType == Luminance8Phase8:
			f.WriteString(`	vec2 yc = textureLod(textureName, coordinate, 0.0).rg;
	float chromaPhase = 3.141592654 * 2.0 * 2.0 * yc.y;
	float rawChroma = step(yc.y, 0.75) * cos(angle + chromaPhase);
	return mix(yc.x, rawChroma, compositeAmplitude);
`)
		case m.InputDataType.isRGB():
			f.WriteString(`	vec3 colour = rgbToLumaChroma * textureLod(textureName, coordinate, 0.0).rgb;
	vec2 quadrature = vec2(cos(angle), sin(angle));
	return mix(colour.r, dot(quadrature, colour.gb), compositeAmplitude);
`)
		}
		f.WriteString("}\n")
	}

	f.WriteString(`
void main(void) {
	vec3 fragColour3;
`)

	// samples for composite colour and S-Video are taken at quarter colour
	// cycle intervals either side of the centre sample. chrominance is
	// recovered by multiplying with the subcarrier and filtering
	switch m.DisplayType {
	case RGB:
		f.WriteString("	fragColour3 = textureLod(textureName, textureCoordinate, 0.0).rgb;\n")

	case SVideo:
		f.WriteString(`	vec2 channels = vec2(0.0);
	for (int i = 0; i < 15; ++i) {
		float angle = compositeAngle + float(i - 7) * 1.570796327;
		vec2 s = svideoSample(textureCoordinates[i], angle);
		channels += vec2(cos(angle), sin(angle)) * s.y * textureWeights[i];
	}
	float luminance = svideoSample(textureCoordinates[7], compositeAngle).x;
	fragColour3 = lumaChromaToRGB * vec3(luminance, channels * 2.0);
`)

	case CompositeColour:
		f.WriteString(`	float luminance = 0.0;
	vec2 channels = vec2(0.0);
	for (int i = 0; i < 15; ++i) {
		float angle = compositeAngle + float(i - 7) * 1.570796327;
		float s = compositeSample(textureCoordinates[i], angle) * textureWeights[i];
		luminance += s;
		channels += vec2(cos(angle), sin(angle)) * s;
	}
	luminance /= (1.0 - compositeAmplitude);
	channels *= 2.0 * oneOverCompositeAmplitude;

	// no colour burst means a monochrome signal
	fragColour3 = mix(
		lumaChromaToRGB * vec3(luminance, channels),
		vec3(luminance),
		step(oneOverCompositeAmplitude, 0.01)
	);
`)

	case CompositeMonochrome:
		f.WriteString("	fragColour3 = vec3(compositeSample(textureCoordinate, compositeAngle));\n")
	}

	if math.Abs(float64(m.Brightness)-1.0) > 0.05 {
		f.WriteString(fmt.Sprintf("	fragColour3 = fragColour3 * %.6f;\n", m.Brightness))
	}

	if math.Abs(float64(outputGamma-m.IntendedGamma)) > 0.05 {
		f.WriteString(fmt.Sprintf("	fragColour3 = pow(fragColour3, vec3(%.6f));\n", outputGamma/m.IntendedGamma))
	}

	f.WriteString(`	fragColour = vec4(fragColour3, 0.64);
}`)

	return v.String(), f.String()
}

// colour space conversion matrices in column-major order
var (
	rgbToYIQ = [9]float32{0.299, 0.596, 0.211, 0.587, -0.274, -0.523, 0.114, -0.322, 0.312}
	yiqToRGB = [9]float32{1.0, 1.0, 1.0, 0.956, -0.272, -1.106, 0.621, -0.647, 1.703}
	rgbToYUV = [9]float32{0.299, -0.14713, 0.615, 0.587, -0.28886, -0.51499, 0.114, 0.436, -0.10001}
	yuvToRGB = [9]float32{1.0, 1.0, 1.0, 0.0, -0.39465, 2.03211, 1.13983, -0.58060, 0.0}
)

// textureCoordinateOffsets returns the clock offsets of the samples taken by
// the conversion program. four samples per colour cycle
func textureCoordinateOffsets(m Modals) []float32 {
	clocksPerCycle := float32(m.CyclesPerLine) * float32(m.ColourCycleDenominator) / float32(m.ColourCycleNumerator)
	offsets := make([]float32, conversionTaps)
	for c := range offsets {
		offsets[c] = (float32(c-7) / 4.0) * clocksPerCycle
	}
	return offsets
}
