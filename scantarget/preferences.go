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
	"github.com/jetsetilly/scanout/paths"
	"github.com/jetsetilly/scanout/prefs"
)

// Preferences for the scan target. Changes are applied to the ScanTarget
// immediately
type Preferences struct {
	st  *ScanTarget
	dsk *prefs.Disk

	// gamma of the display the output is shown on
	OutputGamma prefs.Float

	// whether the presentation loop should wait for the GPU
	BlockingDraw prefs.Bool

	// whether the presented image keeps a 4:3 shape
	AspectCorrect prefs.Bool

	// proportion of the previous frame that remains at the start of a new frame
	DecayLevel prefs.Float
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The preferences are loaded from the default preferences
// file
func NewPreferences(st *ScanTarget) (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return newPreferences(st, pth)
}

func newPreferences(st *ScanTarget, pth string) (*Preferences, error) {
	p := &Preferences{st: st}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	// a gamma refused by the scan target is not stored
	p.OutputGamma.SetHookPre(func(v prefs.Value) error {
		return p.st.SetOutputGamma(float32(v.(float64)))
	})
	p.AspectCorrect.SetHookPost(func(v prefs.Value) error {
		p.st.SetAspectCorrection(v.(bool))
		return nil
	})
	p.DecayLevel.SetHookPost(func(v prefs.Value) error {
		p.st.SetDecay(float32(v.(float64)))
		return nil
	})

	err = p.dsk.Add("scantarget.outputGamma", &p.OutputGamma)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("scantarget.blockingDraw", &p.BlockingDraw)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("scantarget.aspectCorrect", &p.AspectCorrect)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("scantarget.decayLevel", &p.DecayLevel)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values
func (p *Preferences) SetDefaults() {
	_ = p.OutputGamma.Set(defaultOutputGamma)
	_ = p.BlockingDraw.Set(false)
	_ = p.AspectCorrect.Set(true)
	_ = p.DecayLevel.Set(defaultDecay)
}

// Load preferences from disk
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
