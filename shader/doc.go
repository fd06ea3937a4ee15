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

// Package shader wraps the compilation of GLSL programs and the management of
// their uniform values.
//
// The actual compilation is performed by an implementation of the Compiler
// interface. This will usually be the OpenGL device in the gpu/gl33 package,
// but the gpu/recorder package provides a compiler that works without a GPU.
//
// Uniform values can be set from any goroutine at any time. The values are
// queued as a list of Uniform records and are only sent to the Compiler when
// the program is next bound with Bind(). Records are applied in the order in
// which they were set.
package shader
