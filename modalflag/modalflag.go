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

package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// separates the modes in the string returned by Path()
const modeSeparator = "/"

// Modes handles the command line for a program that has modes, with each mode
// having its own set of flags. Output should be set before the first call to
// Parse() otherwise help is written to stdout.
type Modes struct {
	Output io.Writer

	// arguments from NewArgs(). the index is moved past each sub-mode that
	// is found by Parse()
	args []string
	next int

	// the layer being prepared for the next call to Parse()
	layer layer

	// every mode found since NewArgs()
	path []string
}

// a layer is one level of the command line. it has its own flags and an
// optional list of sub-modes
type layer struct {
	flags    *flag.FlagSet
	subModes []string
	help     string
	parsed   bool
}

func newLayer() layer {
	return layer{flags: flag.NewFlagSet("", flag.ContinueOnError)}
}

func (md *Modes) String() string {
	return md.Path()
}

// NewArgs sets the arguments to be parsed and starts a new layer.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new layer. Flags and sub-modes added after this call apply
// to the next call to Parse().
func (md *Modes) NewMode() {
	md.layer = newLayer()
}

// Mode returns the most recently found mode. Empty if no mode has been found.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns all modes found since NewArgs(), separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// AdditionalHelp is printed after the flags and sub-modes when help is
// requested.
func (md *Modes) AdditionalHelp(help string) {
	md.layer.help = help
}

// Parsed returns true if Parse() has been called for the current layer.
func (md *Modes) Parsed() bool {
	return md.layer.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// Continue with command line processing. Check Mode() if sub-modes were
	// added.
	ParseContinue ParseResult = iota

	// Help was requested and has been printed.
	ParseHelp

	// Parse failed. The error is the second return value.
	ParseError
)

// Parse the current layer. Requests for help are dealt with by Parse() and
// ParseHelp is returned.
func (md *Modes) Parse() (ParseResult, error) {
	if md.Output == nil {
		md.Output = os.Stdout
	}

	l := &md.layer
	l.parsed = true

	hw := &helpWriter{}
	l.flags.SetOutput(hw)

	err := l.flags.Parse(md.args[md.next:])
	switch {
	case errors.Is(err, flag.ErrHelp):
		hw.help(md.Output, md.Path(), l.subModes, l.help)
		return ParseHelp, nil

	case err != nil:
		if len(l.subModes) == 0 {
			return ParseError, err
		}

		// the flag may belong to the default sub-mode. the arguments are
		// parsed again by the next layer
		md.path = append(md.path, l.subModes[0])
		return ParseContinue, nil
	}

	if len(l.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := l.subModes[0]
	if slices.Contains(l.subModes, strings.ToUpper(l.flags.Arg(0))) {
		mode = strings.ToUpper(l.flags.Arg(0))
		md.next++
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments after Parse() that are not flags and are
// not a sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.layer.flags.Args()
}

// GetArg returns one of the arguments returned by RemainingArgs(). An empty
// string is returned if there is no argument at that index.
func (md *Modes) GetArg(i int) string {
	return md.layer.flags.Arg(i)
}

// AddSubModes adds to the sub-modes of the current layer. The first sub-mode
// added is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.layer.subModes = append(md.layer.subModes, strings.ToUpper(m))
	}
}

// AddBool flag to the current layer.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.layer.flags.Bool(name, value, usage)
}

// AddFloat64 flag to the current layer.
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.layer.flags.Float64(name, value, usage)
}

// AddInt flag to the current layer.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.layer.flags.Int(name, value, usage)
}

// AddString flag to the current layer.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.layer.flags.String(name, value, usage)
}

// AddChoice adds a string flag to the current layer that must be one of the
// choices. Comparison is case insensitive and the value is stored in upper
// case. The list of choices is added to the usage string.
func (md *Modes) AddChoice(name string, value string, usage string, choices ...string) *string {
	c := &choice{value: strings.ToUpper(value)}
	for _, s := range choices {
		c.choices = append(c.choices, strings.ToUpper(s))
	}
	md.layer.flags.Var(c, name, fmt.Sprintf("%s: %s", usage, strings.Join(c.choices, ", ")))
	return &c.value
}

// choice implements the flag.Value interface
type choice struct {
	value   string
	choices []string
}

func (c *choice) String() string {
	if c == nil {
		return ""
	}
	return c.value
}

func (c *choice) Set(s string) error {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !slices.Contains(c.choices, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(c.choices, ", "))
	}
	c.value = s
	return nil
}
