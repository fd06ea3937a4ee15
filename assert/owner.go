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

//go:build assertions

package assert

import (
	"fmt"
	"sync/atomic"
)

// Owner records the goroutine that first calls Check() and panics if any other
// goroutine calls Check() subsequently. The zero value is ready to use
type Owner struct {
	id atomic.Uint64
}

// Enabled is true if assertions are being checked
const Enabled = true

// Check that the calling goroutine is the owner. The role argument is used in
// the panic message
func (o *Owner) Check(role string) {
	id := GetGoRoutineID()
	if o.id.CompareAndSwap(0, id) {
		return
	}
	if o.id.Load() != id {
		panic(fmt.Sprintf("%s: called from goroutine %d but owned by goroutine %d", role, id, o.id.Load()))
	}
}

// Release ownership so that a different goroutine can take on the role
func (o *Owner) Release() {
	o.id.Store(0)
}
