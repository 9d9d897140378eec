/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes a canvas snapshot to PDF or PNG for inspection.
// It is a preview of controller state, not the interactive renderer.
package export

import (
	"inkboard/internal/canvas"
	"inkboard/internal/domain"
	"inkboard/internal/textlayout"
	"inkboard/internal/vector"
)

// Options controls both exporters.
//
// Coordinates:
// - Output origin is top-left; one canvas unit maps to one pt (PDF) or one pixel (PNG) times Scale.
// - With a zero Size the page is fitted to the content bounds plus Margin.
// - The snapshot viewport is ignored; items are drawn in canvas coordinates.
type Options struct {
	Size     vector.Size
	Margin   float32
	Scale    float32
	Overlays bool // selection box, pending path, eraser cursor
}

const defaultMargin = 24

func (o Options) normalized() Options {
	if o.Margin <= 0 {
		o.Margin = defaultMargin
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return o
}

// surface is what a backend needs to draw a scene.
type surface interface {
	background(c vector.Color)
	drawPath(p vector.Path, paint vector.Paint)
	rect(r vector.Rect, fill, stroke vector.Color, width float32)
	text(at vector.Pt, size float32, c vector.Color, s string)
	measure(s string, size float32) float32
}

// layout maps canvas coordinates to output coordinates.
type layout struct {
	page vector.Size
	m    vector.Affine2D
}

func newLayout(snap canvas.Snapshot, o Options) layout {
	content := ContentBounds(snap)
	page := o.Size
	if page.W <= 0 || page.H <= 0 {
		page = vector.Size{W: content.W + 2*o.Margin, H: content.H + 2*o.Margin}
		page.W *= o.Scale
		page.H *= o.Scale
	}
	origin := content.Min()
	m := vector.Scale(o.Scale, o.Scale).Mul(vector.Translate(o.Margin-origin.X, o.Margin-origin.Y))
	return layout{page: page, m: m}
}

// ContentBounds is the union of every visible item in snap. An empty canvas
// yields a zero rect.
func ContentBounds(snap canvas.Snapshot) vector.Rect {
	var r vector.Rect
	for _, st := range snap.Strokes {
		b := st.Bounds()
		if snap.IsSelected(st.ID) {
			b = b.Offset(snap.SelectionOffset)
		}
		r = r.Union(b.Pad(st.Paint.Width / 2))
	}
	for _, s := range snap.Stickies {
		r = r.Union(s.Bounds())
	}
	for _, t := range snap.Tapes {
		r = r.Union(t.Bounds())
	}
	for _, p := range snap.LaserPaths {
		r = r.Union(p.Bounds())
	}
	return r
}

var (
	selectionColor = vector.Color{R: 30, G: 120, B: 230, A: 255}
	focusColor     = vector.Color{R: 240, G: 140, B: 0, A: 255}
	imageFill      = vector.Color{R: 235, G: 235, B: 235, A: 255}
)

// drawScene walks snap bottom to top: stickies, strokes, tapes, laser, overlays.
func drawScene(s surface, snap canvas.Snapshot, l layout, o Options) {
	s.background(snap.Background.Color)

	for _, it := range snap.Stickies {
		drawSticky(s, it, l, o.Scale)
	}
	for _, st := range snap.Strokes {
		p := st.Rendered.Clone()
		if snap.IsSelected(st.ID) {
			p.Offset(snap.SelectionOffset)
		}
		p.Transform(l.m)
		s.drawPath(p, scaled(st.Paint, o.Scale))
	}
	for _, t := range snap.Tapes {
		p := t.Path.Transformed(l.m)
		paint := t.Paint
		for _, id := range snap.SelectedTapes {
			if id == t.ID {
				paint = paint.WithColor(paint.Color.WithAlpha(paint.Color.A / 2))
			}
		}
		s.drawPath(p, scaled(paint, o.Scale))
	}
	for _, lp := range snap.LaserPaths {
		s.drawPath(lp.Transformed(l.m), scaled(snap.LaserPaint, o.Scale))
	}

	if !o.Overlays {
		return
	}
	for _, p := range snap.Pending {
		s.drawPath(p.Transformed(l.m), scaled(snap.Paint, o.Scale))
	}
	if !snap.SelectionBounds.IsZero() {
		var p vector.Path
		p.AddRect(snap.SelectionBounds)
		p.Transform(l.m)
		s.drawPath(p, vector.Pen(selectionColor, 1).WithDash(0, 4, 4))
	}
	if e := snap.Eraser; e != nil {
		c := vector.Circle(e.Center, e.Radius)
		c.Transform(l.m)
		s.drawPath(c, vector.Pen(vector.Gray, 1))
	}
}

func drawSticky(s surface, it domain.StickyItem, l layout, scale float32) {
	b := transformRect(it.Bounds(), l.m)
	border := vector.Gray
	if it.Focused {
		border = focusColor
	}
	switch p := it.Property.(type) {
	case domain.PostItProperty:
		s.rect(b, p.Background, border, 1)
		textIn(s, b, p.Padding*scale*it.ScaleFactor, p.TextStyle, scale*it.ScaleFactor, p.Text)
	case domain.TextBoxProperty:
		if !it.Focused {
			border = p.Border
		}
		s.rect(b, vector.Transparent, border, 1)
		textIn(s, b, p.Padding*scale*it.ScaleFactor, p.TextStyle, scale*it.ScaleFactor, p.Text)
	case domain.PainterImageProperty:
		s.rect(b, p.Tint, border, 1)
		m := l.m.Mul(vector.TranslateBy(it.Origin())).Mul(vector.Scale(it.ScaleFactor, it.ScaleFactor))
		for _, sp := range p.Strokes {
			s.drawPath(sp.Transformed(m), vector.Pen(vector.Black, 2*scale*it.ScaleFactor))
		}
	case domain.VectorImageProperty:
		s.rect(b, imageFill, border, 1)
		s.text(vector.Pt{X: b.X + 4, Y: b.Y + 14}, 10, vector.Gray, p.ImageRef)
	case domain.BitmapImageProperty:
		s.rect(b, imageFill, border, 1)
		s.text(vector.Pt{X: b.X + 4, Y: b.Y + 14}, 10, vector.Gray, p.ImageRef+" ("+p.Fit.String()+")")
	}
}

// textIn word-wraps text inside r, starting at its top-left.
func textIn(s surface, r vector.Rect, pad float32, st domain.TextStyle, scale float32, text string) {
	if text == "" {
		return
	}
	size := st.FontSize
	if size <= 0 {
		size = 16
	}
	size *= scale
	measure := func(line string) float32 { return s.measure(line, size) }
	y := r.Y + pad + size
	for _, line := range textlayout.Wrap(text, r.W-2*pad, measure) {
		if y > r.Y+r.H {
			return
		}
		s.text(vector.Pt{X: r.X + pad, Y: y}, size, st.Color, line)
		y += size * 1.2
	}
}

func scaled(p vector.Paint, s float32) vector.Paint {
	q := p.Copy()
	q.Width *= s
	for i := range q.Dash {
		q.Dash[i] *= s
	}
	return q
}

func transformRect(r vector.Rect, m vector.Affine2D) vector.Rect {
	return vector.RectFromPoints(m.Apply(r.Min()), m.Apply(r.Max()))
}
