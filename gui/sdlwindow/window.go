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

package sdlwindow

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/scanout/gpu/gl33"
	"github.com/jetsetilly/scanout/logger"
	"github.com/jetsetilly/scanout/paths"
	"github.com/jetsetilly/scanout/scantarget"
	"github.com/veandco/go-sdl2/sdl"
)

// Window presents a scan target. It is the consumer of the scan target
type Window struct {
	plt   *platform
	dev   *gl33.Device
	st    *scantarget.ScanTarget
	prefs *scantarget.Preferences

	// closed when the user asks to quit
	quit   chan struct{}
	closed bool
}

// NewWindow is the preferred method of initialisation for the Window type.
// Must be called from the main thread
func NewWindow(opts scantarget.Options) (*Window, error) {
	win := &Window{
		quit: make(chan struct{}),
	}

	var err error

	win.plt, err = newPlatform()
	if err != nil {
		return nil, err
	}

	win.dev, err = gl33.New()
	if err != nil {
		_ = win.plt.destroy()
		return nil, err
	}

	win.st, err = scantarget.NewScanTarget(win.dev, opts)
	if err != nil {
		win.dev.Destroy()
		_ = win.plt.destroy()
		return nil, err
	}

	win.prefs, err = scantarget.NewPreferences(win.st)
	if err != nil {
		win.st.Destroy()
		win.dev.Destroy()
		_ = win.plt.destroy()
		return nil, err
	}

	return win, nil
}

// ScanTarget returns the scan target being presented by the window
func (win *Window) ScanTarget() *scantarget.ScanTarget {
	return win.st
}

// Preferences returns the preferences of the scan target
func (win *Window) Preferences() *scantarget.Preferences {
	return win.prefs
}

// Quit returns a channel that is closed when the user has asked to quit
func (win *Window) Quit() <-chan struct{} {
	return win.quit
}

// DisplayRefreshRate implements the limiter.Display interface
func (win *Window) DisplayRefreshRate() (float32, bool) {
	return float32(win.plt.mode.RefreshRate), true
}

func (win *Window) requestQuit() {
	if !win.closed {
		close(win.quit)
		win.closed = true
	}
}

// Service handles window events and presents the most recent output of the
// scan target. Must be called from the main thread
func (win *Window) Service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			win.requestQuit()

		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN || ev.Repeat == 1 {
				break // switch
			}
			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				win.requestQuit()
			case sdl.SCANCODE_F11:
				win.plt.toggleFullScreen()
			case sdl.SCANCODE_F12:
				win.dumpState()
			}
		}
	}

	w, h := win.plt.framebufferSize()
	win.st.Draw(win.prefs.BlockingDraw.Get().(bool), w, h)
	win.plt.swap()
}

// dumpState writes the state of the scan target to a new file in the
// current directory
func (win *Window) dumpState() {
	fn := paths.UniqueFilename("state", "scantarget") + ".dot"
	f, err := os.Create(fn)
	if err != nil {
		logger.Logf(logger.Allow, "sdlwindow", "state dump: %v", err)
		return
	}
	defer f.Close()
	win.st.DumpState(f)
	logger.Logf(logger.Allow, "sdlwindow", "state written to %s", fn)
}

// Destroy implements the GuiCreator interface. Preferences are saved and all
// resources are released. Any errors are written to output
func (win *Window) Destroy(output io.Writer) {
	err := win.prefs.Save()
	if err != nil {
		fmt.Fprintf(output, "* error saving preferences: %v\n", err)
	}

	win.st.Destroy()
	win.dev.Destroy()

	err = win.plt.destroy()
	if err != nil {
		fmt.Fprintf(output, "* error destroying window: %v\n", err)
	}
}
