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

// Package gl33 implements the gpu.Device interface with OpenGL 3.3 core
// profile. An OpenGL context must be current on the calling goroutine when
// New() is called and for every subsequent call to the Device. The gl.Init()
// function must have been called.
//
// OpenGL 3.3 is the minimum version because per-instance vertex attributes
// are required.
package gl33
