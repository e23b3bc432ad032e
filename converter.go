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

import (
	"math"
	"slices"

	"seehuhn.de/go/polyscan/math3d"
)

// Fixed-point parameters for the interior edge stepper. The x position along
// an edge is held in an int64 with scaleBits fractional bits, so advancing to
// the next row costs one add and one shift instead of a multiply and a round.
// 24 fractional bits keep the accumulated conversion error below a pixel
// boundary for any edge that fits in screen coordinates, with room for
// coordinates far beyond realistic display sizes in the integer part.
const (
	scaleBits = 24
	scaleOne  = 1 << scaleBits
	scaleMask = scaleOne - 1
)

// Converter scan-converts projected polygons into per-row pixel spans.
// The caller creates one instance and reuses it for multiple polygons.
// The row buffer is owned by the Converter and grows as needed but never
// shrinks, achieving zero allocations in steady state.
//
// A Converter is not safe for concurrent use. Each rendering goroutine
// should own its own instance.
type Converter struct {
	// View is the window that conversion output is clipped to. It may be
	// modified between calls to Convert; a height change triggers a row
	// buffer reallocation on the next conversion.
	View math3d.ViewWindow

	spans []Span // one per view window row, indexed relative to the top offset

	// Dirty range of the current conversion, in absolute screen rows.
	// After Convert returns, all valid spans lie in [top, bottom];
	// top > bottom means no row was touched.
	top    int
	bottom int

	// yOff is the view top offset under which top/bottom were recorded.
	// Tracking it separately keeps the scoped clear correct even if the
	// caller moves the view window between conversions.
	yOff int
}

// NewConverter returns a Converter clipping to the given view window.
// The window's fields may be changed in between scan conversions.
func NewConverter(view math3d.ViewWindow) *Converter {
	return &Converter{
		View:   view,
		top:    emptyLeft,
		bottom: emptyRight,
	}
}

// Top returns the first screen row touched by the last conversion.
// The result is only meaningful if the last call to Convert returned true.
func (c *Converter) Top() int {
	return c.top
}

// Bottom returns the last screen row touched by the last conversion.
// The result is only meaningful if the last call to Convert returned true.
func (c *Converter) Bottom() int {
	return c.bottom
}

// Span returns the pixel interval of screen row y. It is valid only for
// rows in [Top(), Bottom()] after a conversion reported the polygon
// visible; rows in that range can still be individually empty and must be
// checked with IsValid.
func (c *Converter) Span(y int) Span {
	return c.spans[y-c.yOff]
}

// Spans calls emit for every covered row of the last conversion, in
// top-to-bottom order. The columns passed to emit are inclusive.
func (c *Converter) Spans(emit func(y, left, right int)) {
	for y := c.top; y <= c.bottom; y++ {
		if s := c.spans[y-c.yOff]; s.IsValid() {
			emit(y, s.Left, s.Right)
		}
	}
}

// ensureCapacity (re)allocates the row buffer if the view window height
// changed. A fresh buffer is marked fully dirty so that the next clear
// touches every row.
func (c *Converter) ensureCapacity() {
	height := max(c.View.Height, 0)
	if len(c.spans) == height {
		return
	}
	c.spans = slices.Grow(c.spans[:0], height)[:height]
	for i := range c.spans {
		c.spans[i].clear()
	}
	c.top = c.View.TopOffset
	c.bottom = c.View.TopOffset + height - 1
	c.yOff = c.View.TopOffset
}

// clearDirty resets the rows touched by the previous conversion and starts
// a new empty dirty range under the current view offset.
func (c *Converter) clearDirty() {
	for y := c.top; y <= c.bottom; y++ {
		c.spans[y-c.yOff].clear()
	}
	c.top = emptyLeft
	c.bottom = emptyRight
	c.yOff = c.View.TopOffset
}

// Convert scan-converts one projected polygon. It returns whether the
// polygon is visible in the view window, i.e. whether at least one row has
// a non-empty span.
//
// Vertices are taken in order, with the edge from the last vertex back to
// the first closing the polygon; only the x and y coordinates are used.
// Malformed polygons (fewer than three vertices, or any non-finite x or y
// coordinate) are not an error: they convert to "not visible".
func (c *Converter) Convert(p *math3d.Polygon) bool {
	c.ensureCapacity()
	c.clearDirty()

	minX := c.View.LeftOffset
	maxX := c.View.LeftOffset + c.View.Width - 1
	minY := c.View.TopOffset
	maxY := c.View.TopOffset + c.View.Height - 1

	n := p.Len()
	if n < 3 {
		return false
	}
	for i := range n {
		v := p.Vertex(i)
		if math.IsNaN(v.X) || math.IsNaN(v.Y) ||
			math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return false
		}
	}

	for i := range n {
		v1 := p.Vertex(i)
		v2 := p.Vertex(i + 1) // Vertex wraps around

		// ensure v1.Y <= v2.Y
		if v1.Y > v2.Y {
			v1, v2 = v2, v1
		}
		dy := v2.Y - v1.Y

		// horizontal edges contribute no rows
		if dy == 0 {
			continue
		}

		// Row range of this edge: a vertex exactly on an integer row
		// starts coverage at that row, and the bottom row is exclusive.
		// This is what decides which of two polygons sharing an edge
		// owns the boundary pixels.
		startY := max(ceil(v1.Y), minY)
		endY := min(ceil(v2.Y)-1, maxY)
		c.top = min(c.top, startY)
		c.bottom = max(c.bottom, endY)
		dx := v2.X - v1.X

		if dx == 0 {
			// vertical edge: one clamped column for every row
			x := min(maxX+1, max(ceil(v1.X), minX))
			for y := startY; y <= endY; y++ {
				c.spans[y-c.yOff].setBoundary(x)
			}
			continue
		}

		gradient := dx / dy

		// Trim the leading rows where the edge lies outside the window
		// horizontally: those rows clamp to the window boundary, and
		// the point where the edge line crosses the boundary tells how
		// many of them there are.
		startX := v1.X + (float64(startY)-v1.Y)*gradient
		if startX < float64(minX) {
			yBound := min(int(v1.Y+(float64(minX)-v1.X)/gradient), endY)
			for startY <= yBound {
				c.spans[startY-c.yOff].setBoundary(minX)
				startY++
			}
		} else if startX > float64(maxX) {
			yBound := min(int(v1.Y+(float64(maxX)-v1.X)/gradient), endY)
			for startY <= yBound {
				c.spans[startY-c.yOff].setBoundary(maxX + 1)
				startY++
			}
		}
		if startY > endY {
			continue
		}

		// same again from the bottom end of the row range
		endX := v1.X + (float64(endY)-v1.Y)*gradient
		if endX < float64(minX) {
			yBound := max(ceil(v1.Y+(float64(minX)-v1.X)/gradient), startY)
			for endY >= yBound {
				c.spans[endY-c.yOff].setBoundary(minX)
				endY--
			}
		} else if endX > float64(maxX) {
			yBound := max(ceil(v1.Y+(float64(maxX)-v1.X)/gradient), startY)
			for endY >= yBound {
				c.spans[endY-c.yOff].setBoundary(maxX + 1)
				endY--
			}
		}
		if startY > endY {
			continue
		}

		// Interior rows are inside the window on both sides, so the
		// line equation can run without per-row clamping. The +scaleMask
		// bias makes the truncating shift round up, matching the ceil
		// convention of the row range above.
		xScaled := int64(scaleOne*v1.X+scaleOne*(float64(startY)-v1.Y)*dx/dy) + scaleMask
		dxScaled := int64(dx * scaleOne / dy)
		for y := startY; y <= endY; y++ {
			c.spans[y-c.yOff].setBoundary(int(xScaled >> scaleBits))
			xScaled += dxScaled
		}
	}

	for y := c.top; y <= c.bottom; y++ {
		if c.spans[y-c.yOff].IsValid() {
			return true
		}
	}
	return false
}

// ceil returns the smallest integer >= x.
func ceil(x float64) int {
	return int(math.Ceil(x))
}
