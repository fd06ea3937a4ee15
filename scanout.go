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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jetsetilly/scanout/gpu/recorder"
	"github.com/jetsetilly/scanout/gui/sdlwindow"
	"github.com/jetsetilly/scanout/limiter"
	"github.com/jetsetilly/scanout/logger"
	"github.com/jetsetilly/scanout/modalflag"
	"github.com/jetsetilly/scanout/paths"
	"github.com/jetsetilly/scanout/prefs"
	"github.com/jetsetilly/scanout/scantarget"
	"github.com/jetsetilly/scanout/statsview"
	"github.com/jetsetilly/scanout/testcard"
	"github.com/jetsetilly/scanout/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary. It MUST ONLY
	// be called as part of a larger loop from the main thread
	Service()
}

// communication between the main() function and the launch() function. this is
// required because SDL requires window event handling (including creation) to
// occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// the interface value returned by a failed creator is not
				// necessarily nil
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "HEADLESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "HEADLESS":
		err = headless(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// flags shared by the RUN and HEADLESS modes
type signalFlags struct {
	spec    *string
	display *string
	log     *bool
}

func addSignalFlags(md *modalflag.Modes) signalFlags {
	return signalFlags{
		spec:    md.AddChoice("tv", "NTSC", "television specification", testcard.SpecList...),
		display: md.AddChoice("display", "COMPOSITE", "display type", "RGB", "SVIDEO", "COMPOSITE", "MONO"),
		log:     md.AddBool("log", false, "echo debugging log to stdout"),
	}
}

func (f signalFlags) apply() (testcard.Spec, scantarget.DisplayType, error) {
	if *f.log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	spec, err := testcard.GetSpec(*f.spec)
	if err != nil {
		return testcard.Spec{}, 0, err
	}

	display, err := parseDisplay(*f.display)
	if err != nil {
		return testcard.Spec{}, 0, err
	}

	return spec, display, nil
}

func parseDisplay(s string) (scantarget.DisplayType, error) {
	switch s {
	case "RGB":
		return scantarget.RGB, nil
	case "SVIDEO":
		return scantarget.SVideo, nil
	case "COMPOSITE":
		return scantarget.CompositeColour, nil
	case "MONO":
		return scantarget.CompositeMonochrome, nil
	}
	return 0, fmt.Errorf("unknown display type: %s", s)
}

func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	sf := addSignalFlags(md)
	fps := md.AddFloat64("fps", 0.0, "frames per second. zero to use the television specification")
	stats := md.AddBool("statsview", false, "run stats server")
	prf := md.AddString("prefs", "", "preferences override. eg. \"scantarget.decayLevel::0.6; scantarget.blockingDraw::false\"")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	spec, display, err := sf.apply()
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build")
		}
		fmt.Printf("stats server available at %s\n", statsview.Launch(statsview.DefaultAddress))
	}

	// preferences from the command line are used when the window loads its
	// preferences
	prefs.PushCommandLineStack(*prf)

	sync.creator <- func() (GuiCreator, error) {
		return sdlwindow.NewWindow(scantarget.DefaultOptions())
	}

	var win *sdlwindow.Window
	select {
	case g := <-sync.creation:
		win = g.(*sdlwindow.Window)
	case err := <-sync.creationError:
		prefs.PopCommandLineStack()
		return err
	}

	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "scanout", "unused preferences: %s", unused)
	}

	st := win.ScanTarget()
	card, err := testcard.NewCard(st, st.Producer(), spec, display)
	if err != nil {
		return err
	}

	if *fps <= 0 {
		*fps = float64(spec.FramesPerSecond)
	}
	lmtr := limiter.NewLimiter(float32(*fps), win)
	defer lmtr.Stop()

	card.Run(win.Quit(), lmtr)

	logger.Logf(logger.Allow, "scanout", "%d frames at %.2f fps", card.Frames(), lmtr.Actual())

	return nil
}

func headless(md *modalflag.Modes) error {
	md.NewMode()

	sf := addSignalFlags(md)
	frames := md.AddInt("frames", 60, "number of frames to produce")
	width := md.AddInt("width", 640, "width of the output")
	height := md.AddInt("height", 480, "height of the output")
	dump := md.AddBool("memviz", false, "write the state of the scan target to a dot file on completion")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	spec, display, err := sf.apply()
	if err != nil {
		return err
	}

	rec := recorder.NewRecorder(false)
	st, err := scantarget.NewScanTarget(rec, scantarget.DefaultOptions())
	if err != nil {
		return err
	}
	defer st.Destroy()

	prd := st.Producer()
	card, err := testcard.NewCard(st, prd, spec, display)
	if err != nil {
		return err
	}

	for i := 0; i < *frames; i++ {
		card.Frame()
		st.Draw(true, *width, *height)
	}

	fmt.Println(st.Statistics())
	fmt.Print(rec)

	if *dump {
		fn := paths.UniqueFilename("state", "scantarget") + ".dot"
		f, err := os.Create(fn)
		if err != nil {
			return err
		}
		defer f.Close()

		// the producer runs on this goroutine so its private state can be
		// included
		prd.DumpState(f)
		fmt.Printf("state written to %s\n", fn)
	}

	return nil
}
