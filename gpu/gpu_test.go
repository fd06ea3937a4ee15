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

package gpu_test

import (
	"testing"

	"github.com/jetsetilly/scanout/gpu"
	"github.com/jetsetilly/scanout/test"
)

func TestAttributeTypeSize(t *testing.T) {
	test.ExpectEquality(t, gpu.Uint8.Size(), 1)
	test.ExpectEquality(t, gpu.Uint16.Size(), 2)
	test.ExpectEquality(t, gpu.Int16.Size(), 2)
	test.ExpectEquality(t, gpu.AttributeType(99).Size(), 0)
}
