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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// State is a snapshot of the scan target, suitable for debugging
type State struct {
	Submit Pointers
	Read   Pointers

	Modals     Modals
	ModalsSet  bool
	Statistics Statistics

	// only filled in by the Producer's State() function
	Producer *ProducerState
}

// ProducerState is the part of State that is private to the producer
type ProducerState struct {
	Write Pointers

	Failed          bool
	OutputIsVisible bool
	ProvidedScans   int

	IsFirstInFrame           bool
	PreviousFrameWasComplete bool
	FrameIsComplete          bool

	// copies of the entries at the head of each ring
	ActiveLine *Line
	NextScan   Scan
}

// State returns a snapshot of the scan target. Safe to call from any
// goroutine. The producer's private state is not included, use the State()
// function of the Producer for that
func (st *ScanTarget) State() State {
	st.guard.acquire()
	defer st.guard.release()

	return State{
		Submit:     st.submit.Load(),
		Read:       st.read.Load(),
		Modals:     st.modals,
		ModalsSet:  st.modalsSet,
		Statistics: st.Statistics(),
	}
}

// State returns a snapshot of the scan target including the producer's
// private state. Must be called from the producer goroutine
func (p *Producer) State() State {
	p.owner.Check("scantarget: producer")

	st := p.st
	s := st.State()

	ps := &st.prod
	s.Producer = &ProducerState{
		Write:                    ps.write,
		Failed:                   ps.failed,
		OutputIsVisible:          ps.outputIsVisible,
		ProvidedScans:            ps.providedScans,
		IsFirstInFrame:           ps.isFirstInFrame,
		PreviousFrameWasComplete: ps.previousFrameWasComplete,
		FrameIsComplete:          ps.frameIsComplete,
		NextScan:                 st.scans[ps.write.Scan].scan,
	}

	if ps.activeLine != nil {
		l := *ps.activeLine
		s.Producer.ActiveLine = &l
	}

	return s
}

// DumpState writes a graph of the current State to w in the graphviz dot
// format. Safe to call from any goroutine
func (st *ScanTarget) DumpState(w io.Writer) {
	s := st.State()
	memviz.Map(w, &s)
}

// DumpState writes a graph of the State, including the producer's private
// state, to w in the graphviz dot format. Must be called from the producer
// goroutine
func (p *Producer) DumpState(w io.Writer) {
	s := p.State()
	memviz.Map(w, &s)
}
