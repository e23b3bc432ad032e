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
	"testing"

	"seehuhn.de/go/polyscan/math3d"
)

// poly builds a polygon from (x, y) pairs, with z left at zero.
func poly(coords ...float64) *math3d.Polygon {
	verts := make([]math3d.Vector3, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		verts = append(verts, math3d.Vector3{X: coords[i], Y: coords[i+1]})
	}
	return math3d.NewPolygon(verts...)
}

// slowConvert is a straightforward float implementation of the conversion:
// one ceil and one clamp per row per edge, no trimming, no fixed point.
// It serves as the reference the incremental implementation must match.
func slowConvert(view math3d.ViewWindow, p *math3d.Polygon) map[int]Span {
	minX := view.LeftOffset
	maxX := view.LeftOffset + view.Width - 1
	minY := view.TopOffset
	maxY := view.TopOffset + view.Height - 1

	spans := make(map[int]Span)
	n := p.Len()
	for i := 0; i < n; i++ {
		v1 := p.Vertex(i)
		v2 := p.Vertex(i + 1)
		if v1.Y > v2.Y {
			v1, v2 = v2, v1
		}
		dy := v2.Y - v1.Y
		if dy == 0 {
			continue
		}
		startY := max(ceil(v1.Y), minY)
		endY := min(ceil(v2.Y)-1, maxY)
		gradient := (v2.X - v1.X) / dy
		for y := startY; y <= endY; y++ {
			x := ceil(v1.X + (float64(y)-v1.Y)*gradient)
			x = min(maxX+1, max(x, minX))
			s, ok := spans[y]
			if !ok {
				s = Span{Left: emptyLeft, Right: emptyRight}
			}
			s.setBoundary(x)
			spans[y] = s
		}
	}
	for y, s := range spans {
		if !s.IsValid() {
			delete(spans, y)
		}
	}
	return spans
}

// collect gathers the valid rows of the last conversion.
func collect(c *Converter) map[int]Span {
	spans := make(map[int]Span)
	c.Spans(func(y, left, right int) {
		spans[y] = Span{Left: left, Right: right}
	})
	return spans
}

// The test scenarios use edge slopes that are exactly representable in
// binary, so the float reference and the fixed-point stepper are
// guaranteed to agree on every boundary column.
var convertTests = []struct {
	name string
	view math3d.ViewWindow
	poly *math3d.Polygon
}{
	{
		name: "axis triangle",
		view: math3d.ViewWindow{Width: 20, Height: 20},
		poly: poly(0, 0, 10, 0, 0, 10),
	},
	{
		name: "centered triangle",
		view: math3d.ViewWindow{Width: 100, Height: 100},
		poly: poly(10, 10, 90, 10, 50, 90),
	},
	{
		name: "quad",
		view: math3d.ViewWindow{Width: 32, Height: 32},
		poly: poly(5.5, 3.25, 20.5, 3.25, 24.5, 19.25, 1.5, 19.25),
	},
	{
		name: "crossing left edge",
		view: math3d.ViewWindow{Width: 40, Height: 40},
		poly: poly(-20, 5, 30, 15, -20, 25),
	},
	{
		name: "crossing right edge",
		view: math3d.ViewWindow{Width: 40, Height: 40},
		poly: poly(60, 5, 10, 15, 60, 25),
	},
	{
		name: "diamond larger than view",
		view: math3d.ViewWindow{Width: 100, Height: 100},
		poly: poly(50, -100, 200, 50, 50, 200, -100, 50),
	},
	{
		name: "tall sliver clipped top and bottom",
		view: math3d.ViewWindow{Width: 50, Height: 30},
		poly: poly(20, -40, 24, -40, 22, 88),
	},
	{
		name: "offset view window",
		view: math3d.ViewWindow{LeftOffset: 10, TopOffset: 20, Width: 30, Height: 40},
		poly: poly(10, 20, 18, 52, 2, 84),
	},
	{
		name: "subpixel triangle",
		view: math3d.ViewWindow{Width: 10, Height: 10},
		poly: poly(0.25, 0.25, 0.75, 0.375, 0.5, 0.875),
	},
	{
		name: "pentagon",
		view: math3d.ViewWindow{Width: 64, Height: 64},
		poly: poly(32, 4, 56, 20, 48, 52, 16, 52, 8, 20),
	},
}

func TestAgainstReference(t *testing.T) {
	for _, tc := range convertTests {
		t.Run(tc.name, func(t *testing.T) {
			want := slowConvert(tc.view, tc.poly)

			c := NewConverter(tc.view)
			visible := c.Convert(tc.poly)
			if visible != (len(want) > 0) {
				t.Fatalf("Convert returned %v, want %v", visible, len(want) > 0)
			}
			got := collect(c)

			if len(got) != len(want) {
				t.Errorf("got %d valid rows, want %d", len(got), len(want))
			}
			for y, w := range want {
				g, ok := got[y]
				if !ok {
					t.Errorf("row %d: missing, want %v", y, w)
					continue
				}
				if g != w {
					t.Errorf("row %d: got [%d, %d], want [%d, %d]",
						y, g.Left, g.Right, w.Left, w.Right)
				}
			}
			for y := range got {
				if _, ok := want[y]; !ok {
					t.Errorf("row %d: unexpected span %v", y, got[y])
				}
			}
		})
	}
}

func TestConvertConcrete(t *testing.T) {
	view := math3d.ViewWindow{Width: 100, Height: 100}
	c := NewConverter(view)

	if !c.Convert(poly(10, 10, 90, 10, 50, 90)) {
		t.Fatal("polygon not visible")
	}
	if c.Top() != 10 || c.Bottom() != 89 {
		t.Errorf("got rows %d..%d, want 10..89", c.Top(), c.Bottom())
	}

	cases := []struct {
		y           int
		left, right int
	}{
		{10, 10, 89},
		{50, 30, 69},
		{89, 50, 50},
	}
	for _, tc := range cases {
		s := c.Span(tc.y)
		if !s.IsValid() || s.Left != tc.left || s.Right != tc.right {
			t.Errorf("row %d: got [%d, %d], want [%d, %d]",
				tc.y, s.Left, s.Right, tc.left, tc.right)
		}
	}

	// the interval width rises from row 10 to the middle and falls again
	// towards the apex
	if w10, w50 := c.Span(10).Width(), c.Span(50).Width(); w50 >= w10 {
		t.Errorf("width should shrink towards the apex: row 10 = %d, row 50 = %d", w10, w50)
	}
}

func TestConvertRightTriangle(t *testing.T) {
	c := NewConverter(math3d.ViewWindow{Width: 20, Height: 20})
	if !c.Convert(poly(0, 0, 10, 0, 0, 10)) {
		t.Fatal("triangle not visible")
	}
	if c.Top() != 0 || c.Bottom() != 9 {
		t.Fatalf("got rows %d..%d, want 0..9", c.Top(), c.Bottom())
	}
	for y := 0; y <= 9; y++ {
		s := c.Span(y)
		if !s.IsValid() || s.Left != 0 || s.Right != 9-y {
			t.Errorf("row %d: got [%d, %d], want [0, %d]", y, s.Left, s.Right, 9-y)
		}
	}
}

// TestSharedEdge checks that two triangles sharing an edge cover every
// pixel along that edge exactly once.
func TestSharedEdge(t *testing.T) {
	shared := [][4]float64{
		{0, 0, 10, 10},     // dyadic slope
		{3, 1, 8, 14},      // slope 5/13, not representable exactly
		{11.7, 2, 4.3, 17}, // negative fractional slope
	}
	view := math3d.ViewWindow{Width: 20, Height: 20}

	for _, e := range shared {
		x0, y0, x1, y1 := e[0], e[1], e[2], e[3]

		// two triangles on either side of the shared edge
		left := poly(x0, y0, x1, y1, 0, 19, 0, 1)
		right := poly(x0, y0, 19, 1, 19, 19, x1, y1)

		ca := NewConverter(view)
		cb := NewConverter(view)
		if !ca.Convert(left) || !cb.Convert(right) {
			t.Fatalf("edge %v: triangles not visible", e)
		}

		lo := max(ca.Top(), cb.Top(), ceil(min(y0, y1)))
		hi := min(ca.Bottom(), cb.Bottom(), ceil(max(y0, y1))-1)
		for y := lo; y <= hi; y++ {
			sa, sb := ca.Span(y), cb.Span(y)
			if !sa.IsValid() || !sb.IsValid() {
				continue
			}
			if sa.Right+1 != sb.Left {
				t.Errorf("edge %v row %d: left triangle ends at %d, right starts at %d",
					e, y, sa.Right, sb.Left)
			}
		}
	}
}

// TestEdgeOrderIndependence checks that reversing the vertex order (and
// with it the direction of every edge) leaves the result unchanged.
func TestEdgeOrderIndependence(t *testing.T) {
	for _, tc := range convertTests {
		t.Run(tc.name, func(t *testing.T) {
			fwd := NewConverter(tc.view)
			rev := NewConverter(tc.view)

			n := tc.poly.Len()
			verts := make([]math3d.Vector3, n)
			for i := range verts {
				verts[i] = tc.poly.Vertex(n - 1 - i)
			}

			vf := fwd.Convert(tc.poly)
			vr := rev.Convert(math3d.NewPolygon(verts...))
			if vf != vr {
				t.Fatalf("visibility differs: forward %v, reverse %v", vf, vr)
			}

			got, want := collect(rev), collect(fwd)
			if len(got) != len(want) {
				t.Fatalf("row counts differ: forward %d, reverse %d", len(want), len(got))
			}
			for y, w := range want {
				if g := got[y]; g != w {
					t.Errorf("row %d: forward [%d, %d], reverse [%d, %d]",
						y, w.Left, w.Right, g.Left, g.Right)
				}
			}
		})
	}
}

func TestClippingBounds(t *testing.T) {
	view := math3d.ViewWindow{LeftOffset: 5, TopOffset: 7, Width: 20, Height: 10}
	c := NewConverter(view)

	// polygon sticking out on every side
	if !c.Convert(poly(15, -20, 60, 12, 15, 40, -30, 12)) {
		t.Fatal("polygon not visible")
	}

	minX := view.LeftOffset
	maxX := view.LeftOffset + view.Width - 1
	minY := view.TopOffset
	maxY := view.TopOffset + view.Height - 1

	count := 0
	c.Spans(func(y, left, right int) {
		count++
		if y < minY || y > maxY {
			t.Errorf("row %d outside view rows %d..%d", y, minY, maxY)
		}
		if left < minX || right > maxX {
			t.Errorf("row %d: span [%d, %d] outside columns %d..%d",
				y, left, right, minX, maxX)
		}
	})
	if count != view.Height {
		t.Errorf("got %d covered rows, want %d", count, view.Height)
	}
}

func TestDegenerateInputs(t *testing.T) {
	view := math3d.ViewWindow{Width: 100, Height: 100}

	cases := []struct {
		name string
		poly *math3d.Polygon
	}{
		{"empty", poly()},
		{"single vertex", poly(10, 10)},
		{"two vertices", poly(10, 10, 20, 20)},
		{"horizontal line", poly(0, 5, 10, 5, 20, 5)},
		{"zero height", poly(0, 5, 10, 5, 20, 5, 30, 5)},
		{"left of view", poly(-30, 10, -10, 10, -20, 30)},
		{"right of view", poly(130, 10, 150, 10, 140, 30)},
		{"above view", poly(10, -30, 30, -30, 20, -10)},
		{"below view", poly(10, 130, 30, 130, 20, 150)},
		{"NaN coordinate", poly(10, 10, 90, math.NaN(), 50, 90)},
		{"infinite coordinate", poly(10, 10, math.Inf(1), 20, 50, 90)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewConverter(view)
			if c.Convert(tc.poly) {
				t.Error("degenerate polygon reported visible")
			}
			c.Spans(func(y, left, right int) {
				t.Errorf("unexpected span at row %d", y)
			})
		})
	}
}

// TestDegenerateAfterVisible makes sure a degenerate conversion clears the
// rows of the previous polygon instead of leaving them valid.
func TestDegenerateAfterVisible(t *testing.T) {
	view := math3d.ViewWindow{Width: 100, Height: 100}
	c := NewConverter(view)

	if !c.Convert(poly(10, 10, 90, 10, 50, 90)) {
		t.Fatal("setup polygon not visible")
	}
	if c.Convert(poly(10, 10, 20, 20)) {
		t.Error("two-vertex polygon reported visible")
	}
	c.Spans(func(y, left, right int) {
		t.Errorf("stale span at row %d", y)
	})
}

func TestViewHeightChange(t *testing.T) {
	c := NewConverter(math3d.ViewWindow{Width: 100, Height: 100})

	// fill rows deep into the tall view
	if !c.Convert(poly(10, 10, 90, 10, 50, 90)) {
		t.Fatal("polygon not visible in tall view")
	}

	// shrink the view; the converter must resize and forget the rows that
	// no longer exist
	c.View = math3d.ViewWindow{Width: 100, Height: 50}
	if !c.Convert(poly(10, 10, 30, 10, 20, 25)) {
		t.Fatal("polygon not visible in short view")
	}
	var rows []int
	c.Spans(func(y, left, right int) {
		rows = append(rows, y)
		if y >= 25 {
			t.Errorf("stale row %d from previous view", y)
		}
	})
	if len(rows) == 0 {
		t.Fatal("no rows after resize")
	}

	// grow the view again
	c.View = math3d.ViewWindow{Width: 100, Height: 200}
	if !c.Convert(poly(10, 150, 90, 150, 50, 190)) {
		t.Fatal("polygon not visible in grown view")
	}
	if c.Top() != 150 || c.Bottom() != 189 {
		t.Errorf("got rows %d..%d, want 150..189", c.Top(), c.Bottom())
	}
}

// TestViewOffsetChange moves the view window between conversions without
// changing its height; the buffer is reused and must still clear the rows
// dirtied under the previous offset.
func TestViewOffsetChange(t *testing.T) {
	c := NewConverter(math3d.ViewWindow{Width: 100, Height: 100})

	if !c.Convert(poly(10, 10, 90, 10, 50, 90)) {
		t.Fatal("polygon not visible")
	}

	c.View = math3d.ViewWindow{TopOffset: 50, Width: 100, Height: 100}
	if !c.Convert(poly(10, 60, 90, 60, 50, 80)) {
		t.Fatal("polygon not visible in moved view")
	}
	want := slowConvert(c.View, poly(10, 60, 90, 60, 50, 80))
	got := collect(c)
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for y, w := range want {
		if got[y] != w {
			t.Errorf("row %d: got %v, want %v", y, got[y], w)
		}
	}
}

func TestSpansBeforeConvert(t *testing.T) {
	c := NewConverter(math3d.ViewWindow{Width: 10, Height: 10})
	c.Spans(func(y, left, right int) {
		t.Errorf("unexpected span at row %d", y)
	})
}

func TestSpansOrdered(t *testing.T) {
	c := NewConverter(math3d.ViewWindow{Width: 100, Height: 100})
	if !c.Convert(poly(10, 10, 90, 10, 50, 90)) {
		t.Fatal("polygon not visible")
	}
	var rows []int
	c.Spans(func(y, left, right int) {
		rows = append(rows, y)
	})
	if !slices.IsSorted(rows) {
		t.Error("spans not emitted in top-to-bottom order")
	}
	if len(rows) != 80 {
		t.Errorf("got %d rows, want 80", len(rows))
	}
}
