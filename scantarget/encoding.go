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
	"encoding/binary"

	"github.com/jetsetilly/scanout/gpu"
)

// scan records as sent to the GPU. little-endian
//
//	 0  end point 0: x, y, data offset, composite angle, cycles (five uint16)
//	10  end point 1: as above
//	20  composite amplitude (uint8)
//	21  unused
//	22  data y (uint16)
//	24  line (uint16)
//	26  unused (uint16)
const (
	scanStride         = 28
	scanEndPointStride = 10
)

// line records as sent to the GPU. little-endian
//
//	 0  end point 0: x, y, composite angle, cycles (four uint16)
//	 8  end point 1: as above
//	16  line (uint16)
//	18  composite amplitude (uint8)
//	19  unused
const (
	lineStride         = 20
	lineEndPointStride = 8
)

func encodeScan(dst []byte, r *scanRecord) {
	for c := 0; c < 2; c++ {
		e := &r.scan.EndPoints[c]
		o := c * scanEndPointStride
		binary.LittleEndian.PutUint16(dst[o:], e.X)
		binary.LittleEndian.PutUint16(dst[o+2:], e.Y)
		binary.LittleEndian.PutUint16(dst[o+4:], e.DataOffset)
		binary.LittleEndian.PutUint16(dst[o+6:], uint16(e.CompositeAngle))
		binary.LittleEndian.PutUint16(dst[o+8:], e.CyclesSinceEndOfHorizontalRetrace)
	}
	dst[20] = r.scan.CompositeAmplitude
	dst[21] = 0
	binary.LittleEndian.PutUint16(dst[22:], r.dataY)
	binary.LittleEndian.PutUint16(dst[24:], r.line)
	binary.LittleEndian.PutUint16(dst[26:], 0)
}

func encodeLine(dst []byte, l *Line) {
	for c := 0; c < 2; c++ {
		e := &l.EndPoints[c]
		o := c * lineEndPointStride
		binary.LittleEndian.PutUint16(dst[o:], e.X)
		binary.LittleEndian.PutUint16(dst[o+2:], e.Y)
		binary.LittleEndian.PutUint16(dst[o+4:], uint16(e.CompositeAngle))
		binary.LittleEndian.PutUint16(dst[o+6:], e.CyclesSinceEndOfHorizontalRetrace)
	}
	binary.LittleEndian.PutUint16(dst[16:], l.Line)
	dst[18] = l.CompositeAmplitude
	dst[19] = 0
}

// attributes of the composition program, in order of location
var compositionAttributes = []string{
	"startDataX",
	"startClock",
	"endDataX",
	"endClock",
	"dataY",
	"lineY",
}

var scanLayout = gpu.Layout{
	Stride: scanStride,
	Attributes: []gpu.Attribute{
		{Location: 0, Components: 1, Type: gpu.Uint16, Offset: 4},
		{Location: 1, Components: 1, Type: gpu.Uint16, Offset: 8},
		{Location: 2, Components: 1, Type: gpu.Uint16, Offset: scanEndPointStride + 4},
		{Location: 3, Components: 1, Type: gpu.Uint16, Offset: scanEndPointStride + 8},
		{Location: 4, Components: 1, Type: gpu.Uint16, Offset: 22},
		{Location: 5, Components: 1, Type: gpu.Uint16, Offset: 24},
	},
}

// attributes of the conversion program, in order of location
var conversionAttributes = []string{
	"startPoint",
	"endPoint",
	"startClock",
	"endClock",
	"lineY",
	"lineCompositeAmplitude",
	"startCompositeAngle",
	"endCompositeAngle",
}

var lineLayout = gpu.Layout{
	Stride: lineStride,
	Attributes: []gpu.Attribute{
		{Location: 0, Components: 2, Type: gpu.Uint16, Offset: 0},
		{Location: 1, Components: 2, Type: gpu.Uint16, Offset: lineEndPointStride},
		{Location: 2, Components: 1, Type: gpu.Uint16, Offset: 6},
		{Location: 3, Components: 1, Type: gpu.Uint16, Offset: lineEndPointStride + 6},
		{Location: 4, Components: 1, Type: gpu.Uint16, Offset: 16},
		{Location: 5, Components: 1, Type: gpu.Uint8, Offset: 18},
		{Location: 6, Components: 1, Type: gpu.Int16, Offset: 4},
		{Location: 7, Components: 1, Type: gpu.Int16, Offset: lineEndPointStride + 4},
	},
}
