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

// Package sdlwindow opens an SDL window with an OpenGL 3.3 core context and
// presents a scan target in it. The Window type must be created and serviced
// from the main thread. The scan target's producer can run in any other
// goroutine.
//
// Keys:
//
//	Escape    quit
//	F11       toggle full screen
//	F12       write the state of the scan target to a graphviz file
package sdlwindow
