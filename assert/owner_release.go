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

//go:build !assertions

package assert

// Owner records the goroutine that first calls Check(). In non-assertion
// builds there is no checking
type Owner struct{}

// Enabled is true if assertions are being checked
const Enabled = false

// Check that the calling goroutine is the owner
func (o *Owner) Check(_ string) {}

// Release ownership so that a different goroutine can take on the role
func (o *Owner) Release() {}
