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

//go:build statsview

package statsview

import (
	"fmt"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/jetsetilly/scanout/logger"
)

// DefaultAddress of the statsview HTTP server
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Launch the statsview server on a new goroutine, listening on addr. An empty
// address means DefaultAddress. Returns the URL of the graphs.
func Launch(addr string) string {
	if addr == "" {
		addr = DefaultAddress
	}

	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()

	u := fmt.Sprintf("http://%s%s", addr, path)
	logger.Logf(logger.Allow, "statsview", "serving runtime graphs at %s", u)
	return u
}

// Available returns true if the package was built with the statsview build
// constraint.
func Available() bool {
	return true
}
