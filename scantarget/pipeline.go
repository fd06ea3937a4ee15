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

	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/logger"
	"github.com/jetsetilly/scanout/scantarget/fir"
	"github.com/jetsetilly/scanout/shader"
)

// setupPipeline is called by Draw() when the modals have changed. the guard
// is held
func (st *ScanTarget) setupPipeline() {
	m := st.modals

	st.cons.processingWidth = m.processingWidth()

	// the data texture is recreated on the next upload if the depth has changed
	if st.cons.dataTextureDepth != 0 && st.cons.dataTextureDepth != st.depth {
		st.dev.DeleteTexture(st.cons.dataTexture)
		st.cons.dataTextureDepth = 0
	}

	st.destroyPrograms()

	var err error

	st.cons.conversion, err = st.conversionProgram(m)
	if err != nil {
		st.buildFailure(err)
	}

	st.cons.composition, err = st.compositionProgram(m)
	if err != nil {
		st.buildFailure(err)
	}

	logger.Logf(logger.Allow, "scantarget", "pipeline: %s input, %s display, processing width %d",
		m.InputDataType, m.DisplayType, st.cons.processingWidth)
}

// failure to build a program is fatal in strict builds. otherwise the stage
// that uses the program is skipped
func (st *ScanTarget) buildFailure(err error) {
	logger.Log(logger.Allow, "scantarget", err)
	if shader.Strict {
		panic(err)
	}
}

func (st *ScanTarget) destroyPrograms() {
	if st.cons.conversion != nil {
		st.cons.conversion.Destroy()
		st.cons.conversion = nil
	}
	if st.cons.composition != nil {
		st.cons.composition.Destroy()
		st.cons.composition = nil
	}
}

// uniforms shared by both programs
func setCommonUniforms(p *shader.Program, m Modals) {
	// a row height slightly larger than the expected spacing of lines makes
	// sure that adjacent lines meet
	p.SetUniformFloat("rowHeight", 1.05/float32(m.ExpectedVerticalLines))
	p.SetUniformFloat("scale", m.OutputScale.X, m.OutputScale.Y)
	p.SetUniformFloat("phaseOffset", m.PhaseLinkedLuminanceOffset)
}

func (st *ScanTarget) compositionProgram(m Modals) (*shader.Program, error) {
	vertex, fragment := compositionSource(m, st.opts.LineCapacity)
	p, err := shader.New(st.dev, vertex, fragment, compositionAttributes...)
	if err != nil {
		return nil, fmt.Errorf("scantarget: composition program: %w", err)
	}
	setCommonUniforms(p, m)
	p.SetUniformInt("textureName", int32(gpu.SourceDataUnit))
	return p, nil
}

func (st *ScanTarget) conversionProgram(m Modals) (*shader.Program, error) {
	vertex, fragment := conversionSource(m, st.outputGamma)
	p, err := shader.New(st.dev, vertex, fragment, conversionAttributes...)
	if err != nil {
		return nil, fmt.Errorf("scantarget: conversion program: %w", err)
	}
	setCommonUniforms(p, m)
	p.SetUniformFloat("origin", m.VisibleArea.X, m.VisibleArea.Y)
	p.SetUniformFloat("size", m.VisibleArea.Width, m.VisibleArea.Height)
	p.SetUniformInt("textureName", int32(gpu.UnprocessedLineUnit))

	if m.DisplayType != RGB {
		p.SetUniformFloatArray("textureCoordinateOffsets", textureCoordinateOffsets(m))

		// low pass filter removes everything at or above the colour subcarrier.
		// the samples are four per colour cycle
		flt, err := fir.New(conversionTaps, 8.0, 0.0, 1.0)
		if err != nil {
			p.Destroy()
			return nil, fmt.Errorf("scantarget: conversion program: %w", err)
		}
		p.SetUniformFloatArray("textureWeights", flt.Coefficients())

		switch m.CompositeColourSpace {
		case YIQ:
			p.SetUniformMatrix3("lumaChromaToRGB", yiqToRGB)
			p.SetUniformMatrix3("rgbToLumaChroma", rgbToYIQ)
		case YUV:
			p.SetUniformMatrix3("lumaChromaToRGB", yuvToRGB)
			p.SetUniformMatrix3("rgbToLumaChroma", rgbToYUV)
		}
	}

	return p, nil
}
