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

// Package statsview serves graphs of the Go runtime (heap, GC pauses and
// goroutine counts) while the scanout demo is running. It is only built when
// the statsview build constraint is present. Without it Launch() does nothing
// and Available() returns false.
//
// The graphs are served at:
//
//	localhost:12600/debug/statsview
//
// and the standard pprof endpoints at:
//
//	localhost:12600/debug/pprof/
//
// A long run of the test card with the statsview open shows whether Draw() or
// the producer are allocating per frame. A flat heap graph is the expected
// result.
package statsview
