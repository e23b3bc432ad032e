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

// Polygon is an ordered, cyclic list of vertices. Edges are implicit: each
// vertex connects to the next, and the last vertex connects back to the
// first. A Polygon used for scan conversion should be convex and have at
// least three vertices.
type Polygon struct {
	verts []Vector3
}

// NewPolygon creates a polygon with the given vertices. The vertices are
// copied, so the caller may reuse the slice.
func NewPolygon(verts ...Vector3) *Polygon {
	p := &Polygon{verts: make([]Vector3, len(verts))}
	copy(p.verts, verts)
	return p
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.verts)
}

// Vertex returns the i-th vertex. Indices wrap around, so Vertex(Len())
// returns the first vertex again. i must be non-negative.
func (p *Polygon) Vertex(i int) Vector3 {
	if i >= len(p.verts) {
		i %= len(p.verts)
	}
	return p.verts[i]
}

// SetVertex replaces the i-th vertex. Indices wrap like in Vertex.
func (p *Polygon) SetVertex(i int, v Vector3) {
	if i >= len(p.verts) {
		i %= len(p.verts)
	}
	p.verts[i] = v
}

// Transform replaces every vertex with f applied to it. This is used to
// move a polygon through a rotation or projection step without allocating
// a new polygon.
func (p *Polygon) Transform(f func(Vector3) Vector3) {
	for i, v := range p.verts {
		p.verts[i] = f(v)
	}
}

// SetTo copies the vertices of q into p, growing p's vertex list if
// needed. This lets a scratch polygon be reused across frames.
func (p *Polygon) SetTo(q *Polygon) {
	if cap(p.verts) < len(q.verts) {
		p.verts = make([]Vector3, len(q.verts))
	}
	p.verts = p.verts[:len(q.verts)]
	copy(p.verts, q.verts)
}
