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

// Package prefs facilitates the storage of preferential values in the running
// program and on disk.
//
// The Bool, Int, Float and String types are safe to read from and write to
// from multiple goroutines. Hook functions can be set for each value with
// SetHookPre() and SetHookPost(). This is useful for values that must be
// forwarded to a live system, such as the scan target, as soon as they change.
//
// Values are associated with a key and stored on disk with the Disk type. The
// file has the following format:
//
//	*** do not edit this file by hand ***
//	scantarget.blockingDraw :: false
//	scantarget.outputGamma :: 2.200
//
// Values can also be set from the command line with PushCommandLineStack().
// A value pushed onto the command line stack is applied when a preference with
// a matching key is added to a Disk instance.
package prefs
