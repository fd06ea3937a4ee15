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

// Package limiter paces a producer so that frames are generated at a steady
// rate. The rate can be quantised to the refresh rate of the display that the
// frames are being presented on.
package limiter

import (
	"math"
	"sync/atomic"
	"time"
)

// Display is implemented by anything that presents frames at a fixed rate.
// The quantise return value indicates whether the limiter should snap to the
// display rate when the requested rate is close to it
type Display interface {
	DisplayRefreshRate() (hz float32, quantise bool)
}

// Limiter paces calls to CheckFrame() to the requested number of frames per
// second. Only the producer goroutine should call CheckFrame() and
// MeasureActual(). The atomic fields can be read from anywhere
type Limiter struct {
	// whether to wait for fps limited each frame
	Active atomic.Bool

	// the ideal number of frames per second, including quantisation
	IdealFPS atomic.Uint32 // math.Float32bits

	// the measured number of frames per second
	Measured atomic.Uint32 // math.Float32bits

	// nudge the limiter so that it doesn't wait for the specified number of
	// frames
	Nudge atomic.Int32

	// the requested rate before quantisation
	requestedFPS float32

	// pulse that performs the limiting. for high frame rates the limiter will
	// wait on the pulse every pulseCtLimit frames rather than every frame
	pulse        *time.Ticker
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the FPS measurement
	measuringPulse *time.Ticker
	measureTime    time.Time
	measureCt      int

	display Display
}

// NewLimiter is preferred method of initialising a new instance of the Limiter
// type. The display argument can be nil
func NewLimiter(fps float32, display Display) *Limiter {
	lmtr := &Limiter{
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Millisecond * 1000),
		display:        display,
	}
	lmtr.Active.Store(true)
	lmtr.SetLimit(fps)
	return lmtr
}

// Ideal returns the ideal frame rate, after any quantisation
func (lmtr *Limiter) Ideal() float32 {
	return math.Float32frombits(lmtr.IdealFPS.Load())
}

// Actual returns the most recent measurement of the frame rate
func (lmtr *Limiter) Actual() float32 {
	return math.Float32frombits(lmtr.Measured.Load())
}

// SetLimit changes the number of frames per second. A value of zero or less
// is ignored
func (lmtr *Limiter) SetLimit(fps float32) {
	if fps <= 0.0 {
		return
	}
	lmtr.requestedFPS = fps

	if lmtr.display != nil {
		hz, quantise := lmtr.display.DisplayRefreshRate()
		if quantise && fps >= hz*0.96 && fps <= hz*1.04 {
			fps = hz
		}
	}

	lmtr.IdealFPS.Store(math.Float32bits(fps))

	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// SetDisplay changes the display the limiter is working for. The current
// limit is reapplied so that quantisation can take place
func (lmtr *Limiter) SetDisplay(display Display) {
	lmtr.display = display
	lmtr.SetLimit(lmtr.requestedFPS)
}

// CheckFrame should be called every frame.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	if nudge := lmtr.Nudge.Load(); nudge > 0 {
		lmtr.Nudge.Store(nudge - 1)
		return
	}

	if lmtr.Active.Load() {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// MeasureActual measures frame rate on every tick of the measuring pulse.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.Measured.Store(math.Float32bits(m))
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter's tickers. The limiter should not be used after Stop()
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
