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

// Package polyscan converts projected polygons into horizontal pixel spans.
// This is the inner loop of a software 3D rendering pipeline: every filled
// polygon reduces to walking its edges once per covered screen row and
// reporting the leftmost and rightmost covered column, clipped to a view
// window.
package polyscan

import (
	"image"
	"image/color"
	"image/draw"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/polyscan/math3d"
)

// Renderer fills scan-converted polygons into an image. It owns a
// Converter and shares its reuse semantics: create one instance per
// rendering goroutine and reuse it for many polygons.
type Renderer struct {
	conv *Converter
}

// NewRenderer returns a Renderer clipping to the given view window.
func NewRenderer(view math3d.ViewWindow) *Renderer {
	return &Renderer{conv: NewConverter(view)}
}

// Converter returns the underlying converter, for callers that want the
// raw spans of the last fill.
func (r *Renderer) Converter() *Converter {
	return r.conv
}

// SetView replaces the view window used for subsequent fills.
func (r *Renderer) SetView(view math3d.ViewWindow) {
	r.conv.View = view
}

// Fill scan-converts p and paints its spans into dst in the given color.
// Output is clipped to the intersection of dst's bounds and the view
// window. It returns whether the polygon was visible.
func (r *Renderer) Fill(dst draw.Image, p *math3d.Polygon, col color.Color) bool {
	if !r.conv.Convert(p) {
		return false
	}

	clip := dst.Bounds().Intersect(deviceRect(r.conv.View.Bounds()))
	if clip.Empty() {
		return true
	}

	if rgba, ok := dst.(*image.RGBA); ok {
		r.fillRGBA(rgba, clip, color.RGBAModel.Convert(col).(color.RGBA))
		return true
	}

	r.conv.Spans(func(y, left, right int) {
		if y < clip.Min.Y || y >= clip.Max.Y {
			return
		}
		x0 := max(left, clip.Min.X)
		x1 := min(right, clip.Max.X-1)
		for x := x0; x <= x1; x++ {
			dst.Set(x, y, col)
		}
	})
	return true
}

// fillRGBA writes spans directly into the pixel buffer, avoiding the
// per-pixel interface call of the generic path.
func (r *Renderer) fillRGBA(dst *image.RGBA, clip image.Rectangle, col color.RGBA) {
	r.conv.Spans(func(y, left, right int) {
		if y < clip.Min.Y || y >= clip.Max.Y {
			return
		}
		x0 := max(left, clip.Min.X)
		x1 := min(right, clip.Max.X-1)
		if x0 > x1 {
			return
		}
		row := dst.Pix[dst.PixOffset(x0, y) : dst.PixOffset(x1, y)+4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = col.R
			row[i+1] = col.G
			row[i+2] = col.B
			row[i+3] = col.A
		}
	})
}

// deviceRect converts integer-aligned device bounds to an image.Rectangle.
func deviceRect(r rect.Rect) image.Rectangle {
	return image.Rect(int(r.LLx), int(r.LLy), int(r.URx), int(r.URy))
}
