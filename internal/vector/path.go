/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

// points returns how many (x, y) pairs of Data an op uses.
func (op PathOp) points() int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 0
	}
}

type PathCmd struct {
	Op   PathOp
	Data [6]float32 // enough for cubic; unused slots are zero
}

// End returns the on-curve point the command ends at. Close has none.
func (c PathCmd) End() (Pt, bool) {
	n := c.Op.points()
	if n == 0 {
		return Pt{}, false
	}
	return Pt{c.Data[2*n-2], c.Data[2*n-1]}, true
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
}
func (p *Path) LineTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float32{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

func (p *Path) MoveToPt(pt Pt)       { p.MoveTo(pt.X, pt.Y) }
func (p *Path) LineToPt(pt Pt)       { p.LineTo(pt.X, pt.Y) }
func (p *Path) QuadToPt(ctrl, pt Pt) { p.QuadTo(ctrl.X, ctrl.Y, pt.X, pt.Y) }
func (p *Path) Reset()               { p.Cmds = nil }
func (p *Path) IsEmpty() bool        { return p == nil || len(p.Cmds) == 0 }
func (p *Path) Append(o Path)        { p.Cmds = append(p.Cmds, o.Cmds...) }

// AddRect appends r as a closed subpath.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.W, r.Y)
	p.LineTo(r.X+r.W, r.Y+r.H)
	p.LineTo(r.X, r.Y+r.H)
	p.Close()
}

// Clone returns a deep copy; mutating the copy never touches p.
func (p Path) Clone() Path {
	if len(p.Cmds) == 0 {
		return Path{}
	}
	cmds := make([]PathCmd, len(p.Cmds))
	copy(cmds, p.Cmds)
	return Path{Cmds: cmds}
}

// LastPoint returns the end point of the last drawing command.
func (p *Path) LastPoint() (Pt, bool) {
	for i := len(p.Cmds) - 1; i >= 0; i-- {
		if pt, ok := p.Cmds[i].End(); ok {
			return pt, true
		}
	}
	return Pt{}, false
}

// Transform applies m to every point of the path in place.
func (p *Path) Transform(m Affine2D) {
	for i := range p.Cmds {
		c := &p.Cmds[i]
		for k := 0; k < c.Op.points(); k++ {
			q := m.Apply(Pt{c.Data[2*k], c.Data[2*k+1]})
			c.Data[2*k], c.Data[2*k+1] = q.X, q.Y
		}
	}
}

// Offset translates the path in place.
func (p *Path) Offset(d Pt) {
	if d.IsZero() {
		return
	}
	p.Transform(TranslateBy(d))
}

// Transformed returns a transformed copy.
func (p Path) Transformed(m Affine2D) Path {
	q := p.Clone()
	q.Transform(m)
	return q
}

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points. This is sufficient for
// selection rectangles and cheap overlap rejection.
func (p *Path) Bounds() Rect {
	minX, minY := float32(+1e9), float32(+1e9)
	maxX, maxY := float32(-1e9), float32(-1e9)
	for _, c := range p.Cmds {
		for k := 0; k < c.Op.points(); k++ {
			x, y := c.Data[2*k], c.Data[2*k+1]
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Points returns every on-curve point in command order.
func (p *Path) Points() []Pt {
	pts := make([]Pt, 0, len(p.Cmds))
	for _, c := range p.Cmds {
		if pt, ok := c.End(); ok {
			pts = append(pts, pt)
		}
	}
	return pts
}
