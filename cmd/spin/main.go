// seehuhn.de/go/polyscan - polygon scan conversion for software 3D rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Spin shows a rotating solid octahedron in the local terminal.
// Press q, Esc or Ctrl-C to quit.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/polyscan/canvas"
	"seehuhn.de/go/polyscan/demo"
)

func main() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	canvas.HideCursor(os.Stdout)
	defer canvas.ShowCursor(os.Stdout)

	opts := demo.Options{
		Size:  canvas.StdoutSize,
		Input: os.Stdin,
	}
	if err := demo.Run(context.Background(), os.Stdout, opts); err != nil {
		canvas.ShowCursor(os.Stdout)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "demo error: %v\n", err)
		os.Exit(1)
	}
}
