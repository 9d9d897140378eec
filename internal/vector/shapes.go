/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "github.com/gogpu/gg"

// Closed shapes used as probes (eraser, tap disk) and tape outlines.
// Curve construction is delegated to gg so arcs use the same cubic
// approximation the renderer uses.

// Circle returns a closed circle path.
func Circle(c Pt, r float32) Path {
	gp := gg.NewPath()
	gp.Circle(float64(c.X), float64(c.Y), float64(r))
	return FromGG(gp)
}

// Oval returns a closed ellipse inscribed in r.
func Oval(r Rect) Path {
	gp := gg.NewPath()
	cx, cy := r.Center().X, r.Center().Y
	gp.Ellipse(float64(cx), float64(cy), float64(r.W/2), float64(r.H/2))
	return FromGG(gp)
}

// RoundedRect returns a closed rounded rectangle; radius is clamped to half
// the shorter side.
func RoundedRect(r Rect, radius float32) Path {
	gp := gg.NewPath()
	gp.RoundedRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), float64(radius))
	return FromGG(gp)
}

// Diamond returns a closed four-segment loop of half-diagonal d around c.
func Diamond(c Pt, d float32) Path {
	var p Path
	p.MoveTo(c.X+d, c.Y)
	p.LineTo(c.X, c.Y+d)
	p.LineTo(c.X-d, c.Y)
	p.LineTo(c.X, c.Y-d)
	p.Close()
	return p
}

// ToGG converts p to a gg path.
func ToGG(p Path) *gg.Path {
	gp := gg.NewPath()
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case MoveTo:
			gp.MoveTo(float64(d[0]), float64(d[1]))
		case LineTo:
			gp.LineTo(float64(d[0]), float64(d[1]))
		case QuadTo:
			gp.QuadraticTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]))
		case CubicTo:
			gp.CubicTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]), float64(d[4]), float64(d[5]))
		case Close:
			gp.Close()
		}
	}
	return gp
}

// FromGG converts a gg path back to a Path.
func FromGG(gp *gg.Path) Path {
	var p Path
	for _, el := range gp.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			p.MoveTo(float32(e.Point.X), float32(e.Point.Y))
		case gg.LineTo:
			p.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case gg.QuadTo:
			p.QuadTo(float32(e.Control.X), float32(e.Control.Y), float32(e.Point.X), float32(e.Point.Y))
		case gg.CubicTo:
			p.CubicTo(float32(e.Control1.X), float32(e.Control1.Y), float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case gg.Close:
			p.Close()
		}
	}
	return p
}
