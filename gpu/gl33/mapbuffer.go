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
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// mapBuffer maps the start of the currently bound array buffer for writing.
// the mapping must be flushed and unmapped by the caller
func mapBuffer(length int) []byte {
	ptr := gl.MapBufferRange(gl.ARRAY_BUFFER, 0, length, gl.MAP_WRITE_BIT|gl.MAP_FLUSH_EXPLICIT_BIT)
	if ptr == nil {
		panic("gl33: failed to map buffer")
	}
	return unsafe.Slice((*byte)(ptr), length)
}
