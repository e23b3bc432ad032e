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

// Package demo animates a spinning solid octahedron in a terminal, with
// every face filled through the scan converter. It demonstrates the full
// pipeline: rotate vertices, map to screen coordinates, scan-convert each
// face, and emit the spans as terminal pixels.
package demo

import (
	"cmp"
	"context"
	"io"
	"slices"
	"time"

	"seehuhn.de/go/polyscan"
	"seehuhn.de/go/polyscan/canvas"
	"seehuhn.de/go/polyscan/math3d"
)

const (
	defaultFPS  = 30
	defaultCols = 80
	defaultRows = 24
	spinRateY   = 0.9 // radians per second
	spinRateX   = 0.4
)

// Options configures a demo run.
type Options struct {
	// Size queries the terminal size before each frame. If nil, a fixed
	// 80x24 terminal is assumed.
	Size canvas.SizeFunc

	// Input, if non-nil, is watched for quit keys (q, Esc, Ctrl-C).
	// It should deliver raw, unbuffered bytes.
	Input io.Reader

	// FPS is the target frame rate. Zero means 30.
	FPS int

	// Frames stops the demo after this many frames. Zero means run until
	// the context is cancelled or a quit key arrives.
	Frames int
}

// face is one polygon of the spinning solid.
type face struct {
	base  []math3d.Vector3 // model-space vertices
	poly  *math3d.Polygon  // screen-space scratch, rebuilt each frame
	shade uint8
	depth float64 // mean rotated z of the current frame
}

// octahedron builds the eight faces of a unit octahedron. Each face gets
// its own shade so the rotation is visible without any lighting model.
func octahedron() []*face {
	px := math3d.Vector3{X: 1}
	nx := math3d.Vector3{X: -1}
	py := math3d.Vector3{Y: 1}
	ny := math3d.Vector3{Y: -1}
	pz := math3d.Vector3{Z: 1}
	nz := math3d.Vector3{Z: -1}

	tris := [][]math3d.Vector3{
		{py, px, pz}, {py, pz, nx}, {py, nx, nz}, {py, nz, px},
		{ny, pz, px}, {ny, nx, pz}, {ny, nz, nx}, {ny, px, nz},
	}

	faces := make([]*face, len(tris))
	for i, tri := range tris {
		faces[i] = &face{
			base:  tri,
			poly:  math3d.NewPolygon(tri...),
			shade: uint8(96 + i*20),
		}
	}
	return faces
}

// Run animates the demo, writing frames to w until the context is
// cancelled, a quit key arrives on opts.Input, or opts.Frames frames have
// been drawn. The terminal should be in raw mode with the cursor hidden;
// Run restores neither.
func Run(ctx context.Context, w io.Writer, opts Options) error {
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	frameTime := time.Second / time.Duration(fps)

	size := opts.Size
	if size == nil {
		size = func() (int, int, error) { return defaultCols, defaultRows, nil }
	}

	quit := make(chan struct{})
	if opts.Input != nil {
		go watchInput(opts.Input, quit)
	}

	cols, rows, err := size()
	if err != nil {
		return err
	}
	cv := canvas.New(cols, rows)
	out := canvas.NewWriter(w)
	conv := polyscan.NewConverter(math3d.ViewWindow{Width: cols, Height: 2 * rows})
	canvas.ClearScreen(out)

	faces := octahedron()
	order := make([]*face, len(faces))
	copy(order, faces)

	var angleX, angleY float64
	last := time.Now()
	for frame := 0; opts.Frames == 0 || frame < opts.Frames; frame++ {
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		angleX += spinRateX * dt
		angleY += spinRateY * dt

		cols, rows, err = size()
		if err != nil {
			return err
		}
		cv.Resize(cols, rows)
		conv.View = math3d.ViewWindow{Width: cols, Height: 2 * rows}

		drawSolid(conv, cv, faces, order, angleX, angleY)

		cv.Frame(out)
		if err := out.Flush(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-time.After(frameTime):
		}
	}
	return nil
}

// drawSolid rotates, projects and fills every face for one frame.
// Faces are drawn back to front by mean depth, so nearer faces overdraw
// farther ones.
func drawSolid(conv *polyscan.Converter, cv *canvas.Canvas, faces, order []*face, angleX, angleY float64) {
	width := float64(cv.Width())
	height := float64(cv.Height())
	scale := 0.42 * min(width, height)
	cx := width / 2
	cy := height / 2

	for _, f := range faces {
		f.depth = 0
		for i, v := range f.base {
			rv := v.RotateY(angleY).RotateX(angleX)
			f.depth += rv.Z
			f.poly.SetVertex(i, math3d.Vector3{
				X: cx + scale*rv.X,
				Y: cy - scale*rv.Y,
				Z: rv.Z,
			})
		}
		f.depth /= float64(len(f.base))
	}

	// larger depth is farther from the viewer
	slices.SortFunc(order, func(a, b *face) int {
		return cmp.Compare(b.depth, a.depth)
	})

	for _, f := range order {
		if !conv.Convert(f.poly) {
			continue
		}
		conv.Spans(func(y, left, right int) {
			cv.FillSpan(y, left, right, f.shade)
		})
	}
}

// watchInput reads single bytes from r and closes quit when a quit key
// arrives or the reader fails.
func watchInput(r io.Reader, quit chan<- struct{}) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			switch buf[0] {
			case 'q', 'Q', 3, 27: // q, Ctrl-C, Esc
				close(quit)
				return
			}
		}
		if err != nil {
			return
		}
	}
}
