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

// Package scantarget accumulates scans from an emulated display controller
// into whole frames and presents them with a gpu.Device.
//
// A scan is a segment of one raster line. It has two end points in signal
// space and refers to a run of raw samples in the write area. Scans are
// grouped into lines by the visibility announcements of the producer. Lines
// are grouped into frames by the end of vertical retrace announcement.
//
// There are two roles. The producer role is obtained with the Producer()
// function of the ScanTarget and there can only ever be one producer. The
// producer calls BeginScan(), BeginData(), EndData(), EndScan(), Announce()
// and then Submit() to publish a batch of work. The consumer role is the
// Draw() function of the ScanTarget and should always be called from the
// goroutine that owns the graphics context.
//
// The roles communicate through three rings, the scan ring, the line ring and
// the write area, and three pointer triples. The write triple is private to
// the producer. The submit triple is published by the producer and the read
// triple is published by the consumer. Each triple is published and read as
// a single atomic value.
//
// If any ring would overrun the read pointer then the current batch is marked
// as failed. Begin functions return nil for the remainder of the batch and
// the batch is discarded by Submit(). Failure is never reported as an error.
//
// Building with the "assertions" tag will cause the producer and consumer
// functions to panic if they are called from more than one goroutine.
package scantarget
