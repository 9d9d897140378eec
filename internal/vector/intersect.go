/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path overlap tests used by hit-testing and lasso selection.
//
// Each subpath is flattened to a polyline. Closed subpaths (ending in Close)
// are regions: they contain points by the non-zero rule. Open subpaths are
// plain polylines with no interior. Two paths overlap when any pair of
// subpaths has crossing edges or one has a vertex inside the other's region.

import "github.com/gogpu/gg"

// FlattenTolerance is the maximum distance between a curve and its polyline.
const FlattenTolerance = 0.25

// Polyline is one flattened subpath.
type Polyline struct {
	Pts    []Pt
	Closed bool
}

type subpath struct {
	Polyline
	region *gg.Path // set for closed subpaths only
	bounds Rect
}

// Flatten splits p into subpaths and flattens curves within tolerance.
func (p *Path) Flatten(tolerance float32) []Polyline {
	subs := p.subpaths(tolerance)
	out := make([]Polyline, len(subs))
	for i, s := range subs {
		out[i] = s.Polyline
	}
	return out
}

func (p *Path) subpaths(tolerance float32) []subpath {
	if tolerance <= 0 {
		tolerance = FlattenTolerance
	}
	var (
		out     []subpath
		cur     Path
		start   Pt
		started bool
		closed  bool
	)
	flush := func() {
		if len(cur.Cmds) > 0 {
			out = append(out, newSubpath(cur, closed, tolerance))
		}
		cur = Path{}
		closed = false
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			start = Pt{c.Data[0], c.Data[1]}
			started = true
			cur.Cmds = append(cur.Cmds, c)
		case Close:
			if len(cur.Cmds) == 0 {
				continue
			}
			cur.Cmds = append(cur.Cmds, c)
			closed = true
			flush()
		default:
			if len(cur.Cmds) == 0 {
				// drawing after Close continues from the previous subpath start
				if !started {
					start = Pt{}
				}
				cur.MoveToPt(start)
			}
			cur.Cmds = append(cur.Cmds, c)
		}
	}
	flush()
	return out
}

func newSubpath(sp Path, closed bool, tolerance float32) subpath {
	gp := ToGG(sp)
	flat := gp.Flatten(float64(tolerance))
	pts := make([]Pt, 0, len(flat))
	for _, q := range flat {
		pts = append(pts, Pt{float32(q.X), float32(q.Y)})
	}
	s := subpath{Polyline: Polyline{Pts: pts, Closed: closed}, bounds: boundsOf(pts)}
	if closed {
		s.region = gp
	}
	return s
}

func boundsOf(pts []Pt) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, q := range pts[1:] {
		minX, minY = min(minX, q.X), min(minY, q.Y)
		maxX, maxY = max(maxX, q.X), max(maxY, q.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Contains reports whether pt lies inside any closed subpath of p.
func (p *Path) Contains(pt Pt) bool {
	for _, s := range p.subpaths(FlattenTolerance) {
		if s.contains(pt) {
			return true
		}
	}
	return false
}

func (s subpath) contains(pt Pt) bool {
	if s.region == nil || !s.bounds.Contains(pt) {
		return false
	}
	return s.region.Contains(gg.Pt(float64(pt.X), float64(pt.Y)))
}

// Intersects reports whether p and o overlap anywhere.
func (p *Path) Intersects(o *Path) bool {
	if p.IsEmpty() || o.IsEmpty() {
		return false
	}
	if !p.Bounds().Overlaps(o.Bounds()) {
		return false
	}
	as := p.subpaths(FlattenTolerance)
	bs := o.subpaths(FlattenTolerance)
	for _, a := range as {
		for _, b := range bs {
			if a.bounds.Overlaps(b.bounds) && a.overlaps(b) {
				return true
			}
		}
	}
	return false
}

func (s subpath) overlaps(o subpath) bool {
	if edgesCross(s.Polyline, o.Polyline) {
		return true
	}
	for _, q := range s.Pts {
		if o.contains(q) {
			return true
		}
	}
	for _, q := range o.Pts {
		if s.contains(q) {
			return true
		}
	}
	return false
}

func (pl Polyline) edge(i int) (Pt, Pt) {
	j := i + 1
	if j == len(pl.Pts) {
		j = 0
	}
	return pl.Pts[i], pl.Pts[j]
}

func (pl Polyline) edgeCount() int {
	switch n := len(pl.Pts); {
	case n == 0:
		return 0
	case n == 1:
		return 1 // a lone point is a zero-length edge
	case pl.Closed:
		return n
	default:
		return n - 1
	}
}

func edgesCross(a, b Polyline) bool {
	na, nb := a.edgeCount(), b.edgeCount()
	for i := 0; i < na; i++ {
		a0, a1 := a.edge(i)
		for j := 0; j < nb; j++ {
			b0, b1 := b.edge(j)
			if SegmentsIntersect(a0, a1, b0, b1) {
				return true
			}
		}
	}
	return false
}

// SegmentsIntersect reports whether segments p1p2 and q1q2 share a point,
// including touching endpoints and collinear overlap.
func SegmentsIntersect(p1, p2, q1, q2 Pt) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func orient(a, b, c Pt) float64 {
	return float64(b.X-a.X)*float64(c.Y-a.Y) - float64(b.Y-a.Y)*float64(c.X-a.X)
}

// onSegment assumes c is collinear with ab.
func onSegment(a, b, c Pt) bool {
	return min(a.X, b.X) <= c.X && c.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= c.Y && c.Y <= max(a.Y, b.Y)
}
