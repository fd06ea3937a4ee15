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
	"fmt"
	"sync/atomic"
)

// Statistics are counters of the work done by the scan target
type Statistics struct {
	// batches published and discarded by Submit()
	Submitted uint64
	Dropped   uint64

	// calls to Draw() that presented an image
	Presented uint64

	// calls to Draw() that returned immediately because the GPU was still busy
	// with the previous pass
	Skipped uint64

	// scans and lines drawn
	Scans uint64
	Lines uint64

	// number of frames that began with a decay pass
	Decays uint64
}

func (s Statistics) String() string {
	return fmt.Sprintf("submitted: %d, dropped: %d, presented: %d, skipped: %d, scans: %d, lines: %d, decays: %d",
		s.Submitted, s.Dropped, s.Presented, s.Skipped, s.Scans, s.Lines, s.Decays)
}

type statistics struct {
	submitted atomic.Uint64
	dropped   atomic.Uint64
	presented atomic.Uint64
	skipped   atomic.Uint64
	scans     atomic.Uint64
	lines     atomic.Uint64
	decays    atomic.Uint64
}

// Statistics returns a copy of the current statistics. Safe to call from any
// goroutine
func (st *ScanTarget) Statistics() Statistics {
	return Statistics{
		Submitted: st.stats.submitted.Load(),
		Dropped:   st.stats.dropped.Load(),
		Presented: st.stats.presented.Load(),
		Skipped:   st.stats.skipped.Load(),
		Scans:     st.stats.scans.Load(),
		Lines:     st.stats.lines.Load(),
		Decays:    st.stats.decays.Load(),
	}
}
