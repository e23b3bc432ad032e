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

// Package canvas renders pixel spans to a terminal using half-block
// characters, giving two vertically stacked pixels per character cell.
package canvas

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Half-block characters used for frame output. The upper pixel of a cell
// is drawn with the foreground color, the lower pixel with the background
// color of an upper-half-block character.
const (
	blockUpper = '▀'
	blockLower = '▄'
	blockFull  = '█'
)

// Canvas is a grayscale drawing buffer with doubled vertical resolution:
// a terminal of c columns and r rows holds c×2r pixels. Pixel value 0 is
// empty; values 1..255 are shades from dark to bright.
type Canvas struct {
	cols   int // terminal columns == pixel columns
	rows   int // terminal rows
	height int // pixel rows == 2*rows
	pixels []uint8
}

// New creates a canvas for a terminal of the given size.
func New(cols, rows int) *Canvas {
	return &Canvas{
		cols:   cols,
		rows:   rows,
		height: 2 * rows,
		pixels: make([]uint8, cols*2*rows),
	}
}

// Width returns the width of the canvas in pixels.
func (c *Canvas) Width() int {
	return c.cols
}

// Height returns the height of the canvas in pixels (twice the terminal
// row count).
func (c *Canvas) Height() int {
	return c.height
}

// Resize adjusts the canvas for a new terminal size, reallocating the
// pixel buffer if needed. The canvas is cleared.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows {
		c.cols = cols
		c.rows = rows
		c.height = 2 * rows
		c.pixels = make([]uint8, cols*2*rows)
		return
	}
	c.Clear()
}

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Set sets a single pixel. Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int, shade uint8) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.height {
		c.pixels[y*c.cols+x] = shade
	}
}

// FillSpan sets the pixels of row y from column left to column right, both
// inclusive. The span is clipped to the canvas; this is the sink for scan
// converter output.
func (c *Canvas) FillSpan(y, left, right int, shade uint8) {
	if y < 0 || y >= c.height {
		return
	}
	left = max(left, 0)
	right = min(right, c.cols-1)
	row := c.pixels[y*c.cols:]
	for x := left; x <= right; x++ {
		row[x] = shade
	}
}

// Frame writes the canvas to w as half-block characters with 256-color
// grayscale escapes. All rows are rewritten, so a frame fully replaces the
// previous one; escape sequences are only emitted where the colors change.
func (c *Canvas) Frame(w *Writer) {
	for row := 0; row < c.rows; row++ {
		upper := c.pixels[2*row*c.cols:]
		lower := c.pixels[(2*row+1)*c.cols:]
		w.MoveCursor(1, row+1)
		for col := 0; col < c.cols; col++ {
			up, lo := upper[col], lower[col]
			if up == 0 && lo == 0 {
				w.Reset()
				w.WriteRune(' ')
				continue
			}
			writeCell(w, up, lo)
		}
	}
	w.Reset()
}

// writeCell emits one terminal cell for an upper and a lower pixel shade.
func writeCell(w *Writer, up, lo uint8) {
	switch {
	case up != 0 && lo != 0 && up == lo:
		w.Foreground(grayIndex(up))
		w.WriteRune(blockFull)
	case up != 0 && lo != 0:
		w.Foreground(grayIndex(up))
		w.Background(grayIndex(lo))
		w.WriteRune(blockUpper)
	case up != 0:
		w.Foreground(grayIndex(up))
		w.Background(defaultColor)
		w.WriteRune(blockUpper)
	default:
		w.Foreground(grayIndex(lo))
		w.Background(defaultColor)
		w.WriteRune(blockLower)
	}
}

// grayIndex maps a shade to the 256-color grayscale ramp (232..255).
func grayIndex(shade uint8) int {
	return 232 + int(shade)*23/255
}

// SizeFunc returns the dimensions of a terminal in character cells.
type SizeFunc func() (cols, rows int, err error)

// StdoutSize is the SizeFunc for the process's standard output.
func StdoutSize() (cols, rows int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor to the top left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor again.
func ShowCursor(w io.Writer) {
	io.WriteString(w, "\033[?25h")
}
