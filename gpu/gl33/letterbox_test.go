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
	"testing"

	"github.com/jetsetilly/scanout/test"
)

func TestLetterbox(t *testing.T) {
	x, y := letterbox(4.0 / 3.0)
	test.ExpectApproximate(t, x, 1.0, 0.001)
	test.ExpectApproximate(t, y, 1.0, 0.001)

	// wide output. image is narrowed
	x, y = letterbox(16.0 / 9.0)
	test.ExpectApproximate(t, x, 0.75, 0.001)
	test.ExpectApproximate(t, y, 1.0, 0.001)

	// tall output. image is shortened
	x, y = letterbox(1.0)
	test.ExpectApproximate(t, x, 1.0, 0.001)
	test.ExpectApproximate(t, y, 0.75, 0.001)

	// nonsense aspect ratio
	x, y = letterbox(0)
	test.ExpectEquality(t, x, 1.0)
	test.ExpectEquality(t, y, 1.0)
}
