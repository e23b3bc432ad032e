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

package polyscan

import "math"

// Sentinel values for an empty span. Any pair with Left > Right would do;
// these extremes let setBoundary work without a separate "empty" flag.
const (
	emptyLeft  = math.MaxInt32
	emptyRight = math.MinInt32
)

// Span is the covered pixel interval of one screen row. Left and Right are
// pixel columns in absolute device coordinates, both inclusive. A row is
// covered iff Left <= Right; a cleared span has Left > Right.
type Span struct {
	Left  int
	Right int
}

// IsValid reports whether the span covers at least one pixel.
func (s Span) IsValid() bool {
	return s.Left <= s.Right
}

// Width returns the number of covered pixels, or 0 for an empty span.
func (s Span) Width() int {
	if s.Left > s.Right {
		return 0
	}
	return s.Right - s.Left + 1
}

// setBoundary widens the span to account for a polygon boundary at column x.
// Seen from the left the boundary covers x itself; seen from the right it
// covers only up to x-1. The asymmetry is what keeps two polygons sharing an
// edge from double-covering or missing the boundary column.
func (s *Span) setBoundary(x int) {
	if x < s.Left {
		s.Left = x
	}
	if x-1 > s.Right {
		s.Right = x - 1
	}
}

// clear resets the span to the empty state.
func (s *Span) clear() {
	s.Left = emptyLeft
	s.Right = emptyRight
}
