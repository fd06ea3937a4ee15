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
	"math/bits"
)

// Address is a packed two dimensional location in the write area. The column
// is in the low bits and the row in the high bits
type Address uint32

// Toroid describes the dimensions of the write area. Both dimensions are
// powers of two and addresses wrap in both directions
type Toroid struct {
	width    int
	height   int
	rowShift uint
	mask     uint32
}

// ErrDimensions is returned by NewToroid() for unsuitable dimensions
var ErrDimensions = errors.New("dimensions must be powers of two")

// NewToroid is the preferred method of initialisation for the Toroid type
func NewToroid(width int, height int) (Toroid, error) {
	if width < 2 || height < 2 || bits.OnesCount(uint(width)) != 1 || bits.OnesCount(uint(height)) != 1 {
		return Toroid{}, fmt.Errorf("scantarget: %w: %dx%d", ErrDimensions, width, height)
	}
	if width*height > 1<<32 {
		return Toroid{}, fmt.Errorf("scantarget: %w: %dx%d is too large", ErrDimensions, width, height)
	}
	return Toroid{
		width:    width,
		height:   height,
		rowShift: uint(bits.TrailingZeros(uint(width))),
		mask:     uint32(width*height - 1),
	}, nil
}

// Width returns the number of samples in a row
func (t Toroid) Width() int {
	return t.width
}

// Height returns the number of rows
func (t Toroid) Height() int {
	return t.height
}

// Size returns the total number of samples
func (t Toroid) Size() int {
	return t.width * t.height
}

// Address packs the column and row. A column equal to the width is the first
// column of the following row
func (t Toroid) Address(x int, y int) Address {
	return Address((uint32(y)<<t.rowShift + uint32(x)) & t.mask)
}

// X returns the column of the address
func (t Toroid) X(a Address) int {
	return int(uint32(a) & uint32(t.width-1))
}

// Y returns the row of the address
func (t Toroid) Y(a Address) int {
	return int((uint32(a) & t.mask) >> t.rowShift)
}

// Add advances the address by n samples, wrapping at the end of the write area
func (t Toroid) Add(a Address, n int) Address {
	return Address((uint32(a) + uint32(n)) & t.mask)
}

// Sub returns the circular distance from b forward to a
func (t Toroid) Sub(a Address, b Address) uint32 {
	return (uint32(a) - uint32(b)) & t.mask
}
