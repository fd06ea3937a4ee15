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
	"sync/atomic"
)

// Pointers is a position in each of the three rings
type Pointers struct {
	Scan      uint16
	Line      uint16
	WriteArea Address
}

func (p Pointers) String() string {
	return fmt.Sprintf("scan: %d, line: %d, write area: 0x%06x", p.Scan, p.Line, uint32(p.WriteArea))
}

func (p Pointers) pack() uint64 {
	return uint64(p.Scan) | uint64(p.Line)<<16 | uint64(p.WriteArea)<<32
}

func unpack(v uint64) Pointers {
	return Pointers{
		Scan:      uint16(v),
		Line:      uint16(v >> 16),
		WriteArea: Address(v >> 32),
	}
}

// pointerCell publishes a Pointers triple as a single atomic word. a reader
// can never observe a triple that was not stored as a whole
type pointerCell struct {
	v atomic.Uint64
}

func (c *pointerCell) Load() Pointers {
	return unpack(c.v.Load())
}

func (c *pointerCell) Store(p Pointers) {
	c.v.Store(p.pack())
}
