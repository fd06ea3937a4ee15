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

import (
	"errors"
	"fmt"
)

// the width of the unprocessed line buffer. scans are composed into the
// buffer at their clock position so the cycles per line should not exceed
// this value
const lineBufferWidth = 2048

// Options are the construction time parameters of a ScanTarget
type Options struct {
	// number of entries in the scan ring. at most 65536
	ScanCapacity int

	// number of entries in the line ring and the height of the unprocessed
	// line buffer. at most 65536
	LineCapacity int

	// dimensions of the write area, in samples. must both be powers of two
	WriteAreaWidth  int
	WriteAreaHeight int

	// the gamma of the display that the target surface is shown on
	OutputGamma float32
}

// gamma of a typical display
const defaultOutputGamma = 2.2

// DefaultOptions returns the Options used by most applications
func DefaultOptions() Options {
	return Options{
		ScanCapacity:    16384,
		LineCapacity:    2048,
		WriteAreaWidth:  2048,
		WriteAreaHeight: 2048,
		OutputGamma:     defaultOutputGamma,
	}
}

// ErrOptions is returned by NewScanTarget() for unusable options
var ErrOptions = errors.New("invalid options")

func (o Options) validate() error {
	if o.ScanCapacity < 2 || o.ScanCapacity > 65536 {
		return fmt.Errorf("%w: scan capacity %d", ErrOptions, o.ScanCapacity)
	}
	if o.LineCapacity < 2 || o.LineCapacity > 65536 {
		return fmt.Errorf("%w: line capacity %d", ErrOptions, o.LineCapacity)
	}
	if o.OutputGamma <= 0 {
		return fmt.Errorf("%w: output gamma %.2f", ErrOptions, o.OutputGamma)
	}
	return nil
}
