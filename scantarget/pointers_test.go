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
	"testing"

	"github.com/jetsetilly/scanout/test"
)

func TestPointerPacking(t *testing.T) {
	for _, p := range []Pointers{
		{},
		{Scan: 1, Line: 2, WriteArea: 3},
		{Scan: 0xffff, Line: 0xffff, WriteArea: 0xffffffff},
		{Scan: 0x1234, Line: 0, WriteArea: 0x003fffff},
	} {
		test.ExpectEquality(t, unpack(p.pack()), p)

		var c pointerCell
		c.Store(p)
		test.ExpectEquality(t, c.Load(), p)
	}

	p := Pointers{Scan: 10, Line: 20, WriteArea: 0x40}
	test.ExpectEquality(t, p.String(), "scan: 10, line: 20, write area: 0x000040")

	// the largest address in the default write area
	p = Pointers{WriteArea: 0x3fffff}
	test.ExpectEquality(t, p.String(), "scan: 0, line: 0, write area: 0x3fffff")
}

func TestRingDistance(t *testing.T) {
	test.ExpectEquality(t, ringDistance(0, 0, 8), 0)
	test.ExpectEquality(t, ringDistance(2, 5, 8), 3)
	test.ExpectEquality(t, ringDistance(6, 1, 8), 3)
	test.ExpectEquality(t, ringDistance(1, 0, 8), 7)
}
