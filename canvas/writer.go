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

package canvas

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxChunkSize is the maximum number of bytes flushed at once. Staying
// near typical MTU size keeps frames flowing smoothly over SSH.
const maxChunkSize = 1400

// defaultColor selects the terminal's default color in Foreground and
// Background calls.
const defaultColor = -1

// Writer accumulates a frame of terminal output and writes it out in
// chunks. It tracks the current foreground and background color so that
// repeated color calls emit no redundant escape sequences.
type Writer struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte // scratch for allocation-free integer formatting
	fg     int
	bg     int
}

// NewWriter creates a Writer sending output to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		bufw: bufio.NewWriterSize(w, 8192),
		fg:   defaultColor,
		bg:   defaultColor,
	}
}

// MoveCursor appends an ANSI cursor position sequence. col and row are
// 1-based terminal coordinates.
func (w *Writer) MoveCursor(col, row int) {
	w.buf.WriteString("\033[")
	w.buf.Write(strconv.AppendInt(w.numBuf[:0], int64(row), 10))
	w.buf.WriteByte(';')
	w.buf.Write(strconv.AppendInt(w.numBuf[:0], int64(col), 10))
	w.buf.WriteByte('H')
}

// Foreground sets the 256-color foreground, or the terminal default if
// idx is defaultColor.
func (w *Writer) Foreground(idx int) {
	if idx == w.fg {
		return
	}
	w.fg = idx
	if idx == defaultColor {
		w.buf.WriteString("\033[39m")
		return
	}
	w.buf.WriteString("\033[38;5;")
	w.buf.Write(strconv.AppendInt(w.numBuf[:0], int64(idx), 10))
	w.buf.WriteByte('m')
}

// Background sets the 256-color background, or the terminal default if
// idx is defaultColor.
func (w *Writer) Background(idx int) {
	if idx == w.bg {
		return
	}
	w.bg = idx
	if idx == defaultColor {
		w.buf.WriteString("\033[49m")
		return
	}
	w.buf.WriteString("\033[48;5;")
	w.buf.Write(strconv.AppendInt(w.numBuf[:0], int64(idx), 10))
	w.buf.WriteByte('m')
}

// Reset restores the terminal's default colors if any color is active.
func (w *Writer) Reset() {
	if w.fg == defaultColor && w.bg == defaultColor {
		return
	}
	w.fg = defaultColor
	w.bg = defaultColor
	w.buf.WriteString("\033[0m")
}

// WriteString appends a string to the frame buffer.
func (w *Writer) WriteString(s string) {
	w.buf.WriteString(s)
}

// WriteRune appends a rune to the frame buffer.
func (w *Writer) WriteRune(r rune) {
	w.buf.WriteRune(r)
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Flush writes the accumulated frame to the underlying writer in chunks
// and resets the frame buffer.
func (w *Writer) Flush() error {
	data := w.buf.String()
	w.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := w.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return w.bufw.Flush()
}
