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

package math3d

import "seehuhn.de/go/geom/rect"

// ViewWindow describes the rectangular screen region that drawing is
// clipped to, in absolute device coordinates with y growing downwards.
type ViewWindow struct {
	// LeftOffset and TopOffset locate the top-left corner of the window
	// on screen. Must be non-negative.
	LeftOffset int
	TopOffset  int

	// Width and Height give the window size in pixels. Must be positive
	// for conversions to produce output; callers are responsible for
	// validating the window before using it.
	Width  int
	Height int
}

// Bounds returns the window as device-space bounds. LL is the top-left
// corner in screen orientation, so LLy <= URy holds with y growing
// downwards, matching how integer-aligned clip rectangles are consumed.
func (w ViewWindow) Bounds() rect.Rect {
	return rect.Rect{
		LLx: float64(w.LeftOffset),
		LLy: float64(w.TopOffset),
		URx: float64(w.LeftOffset + w.Width),
		URy: float64(w.TopOffset + w.Height),
	}
}
