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

package scantarget

// EndPoint is one end of a scan, as supplied by the producer
type EndPoint struct {
	// position in signal space
	X uint16
	Y uint16

	// offset of the sample from the start of the data run. the column of the
	// data run is added by EndScan()
	DataOffset uint16

	// phase of the colour subcarrier. 64 units per cycle
	CompositeAngle int16

	CyclesSinceEndOfHorizontalRetrace uint16
}

// Scan is a segment of one raster line
type Scan struct {
	EndPoints          [2]EndPoint
	CompositeAmplitude uint8
}

// a Scan and the information filled in by the scan target
type scanRecord struct {
	scan Scan

	// row of the write area the scan's data is in
	dataY uint16

	// the line the scan belongs to
	line uint16
}

// LineEndPoint is one end of a Line
type LineEndPoint struct {
	X                                 uint16
	Y                                 uint16
	CompositeAngle                    int16
	CyclesSinceEndOfHorizontalRetrace uint16
}

// Line is a single raster line made up of one or more scans
type Line struct {
	EndPoints          [2]LineEndPoint
	Line               uint16
	CompositeAmplitude uint8
}

// LineMetadata is the frame information for a Line. It is kept separately from
// the line because it is not sent to the GPU
type LineMetadata struct {
	IsFirstInFrame           bool
	PreviousFrameWasComplete bool
}

// Event is announced by the producer along with changes in visibility
type Event int

// List of valid Event values
const (
	EventNone Event = iota
	EventBeginHorizontalRetrace
	EventEndHorizontalRetrace
	EventBeginVerticalRetrace
	EventEndVerticalRetrace
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventBeginHorizontalRetrace:
		return "begin horizontal retrace"
	case EventEndHorizontalRetrace:
		return "end horizontal retrace"
	case EventBeginVerticalRetrace:
		return "begin vertical retrace"
	case EventEndVerticalRetrace:
		return "end vertical retrace"
	}
	return "unknown event"
}
