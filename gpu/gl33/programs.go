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

package gl33

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/shader"
)

// both internal programs draw a quad from gl_VertexID alone. no attributes are
// required
const quadVertex = `#version 150

uniform vec2 scale;
out vec2 texCoord;

void main(void) {
	float lateral = float(gl_VertexID & 1);
	float longitudinal = float((gl_VertexID & 2) >> 1);
	texCoord = vec2(lateral, longitudinal);
	gl_Position = vec4((texCoord*2.0 - vec2(1.0)) * scale, 0.0, 1.0);
}`

const fillFragment = `#version 150

uniform vec3 colour;
out vec4 fragColour;

void main(void) {
	fragColour = vec4(colour, 1.0);
}`

const copyFragment = `#version 150

uniform sampler2D textureName;
uniform float threshold;
in vec2 texCoord;
out vec4 fragColour;

void main(void) {
	fragColour = clamp(texture(textureName, texCoord), threshold, 1.0);
}`

type fillProgram struct {
	*shader.Program
}

func newFillProgram(dev *Device) (fillProgram, error) {
	p, err := shader.New(dev, quadVertex, fillFragment)
	if err != nil {
		return fillProgram{}, err
	}
	return fillProgram{Program: p}, nil
}

func (p fillProgram) draw(dev *Device, r float32, g float32, b float32) {
	p.SetUniformFloat("scale", 1.0, 1.0)
	p.SetUniformFloat("colour", r, g, b)
	p.Bind()
	gl.BindVertexArray(dev.emptyVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

type copyProgram struct {
	*shader.Program
}

func newCopyProgram(dev *Device) (copyProgram, error) {
	p, err := shader.New(dev, quadVertex, copyFragment)
	if err != nil {
		return copyProgram{}, err
	}
	return copyProgram{Program: p}, nil
}

// the shape of the image in the accumulation target
const imageAspect = 4.0 / 3.0

// letterbox returns the scale required to fit an image with imageAspect
// into an output with the given aspect ratio
func letterbox(aspect float32) (float32, float32) {
	if aspect <= 0 {
		return 1.0, 1.0
	}
	if aspect > imageAspect {
		return imageAspect / aspect, 1.0
	}
	return 1.0, aspect / imageAspect
}

func (p copyProgram) draw(dev *Device, unit gpu.TextureUnit, aspect float32, threshold float32) {
	x, y := letterbox(aspect)
	p.SetUniformFloat("scale", x, y)
	p.SetUniformFloat("threshold", threshold)
	p.SetUniformInt("textureName", int32(unit))
	p.Bind()
	gl.BindVertexArray(dev.emptyVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}
