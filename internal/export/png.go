/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"inkboard/internal/canvas"
	"inkboard/internal/textlayout"
	"inkboard/internal/vector"
)

// maxPixels bounds the raster size so a runaway stroke cannot exhaust memory.
const maxPixels = 8192

// WritePNG rasterizes snap into a PNG file at outPath.
func WritePNG(snap canvas.Snapshot, outPath string, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := EncodePNG(snap, f, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// EncodePNG rasterizes snap as PNG into w.
func EncodePNG(snap canvas.Snapshot, w io.Writer, opt Options) error {
	s := render(snap, opt)
	defer func() { _ = s.dc.Close() }()
	var err error
	if len(s.labels) == 0 {
		err = s.dc.EncodePNG(w)
	} else {
		err = png.Encode(w, s.image())
	}
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize renders snap into an image.
func Rasterize(snap canvas.Snapshot, opt Options) image.Image {
	s := render(snap, opt)
	defer func() { _ = s.dc.Close() }()
	return s.image()
}

func render(snap canvas.Snapshot, opt Options) *ggSurface {
	opt = opt.normalized()
	l := newLayout(snap, opt)
	s := &ggSurface{dc: gg.NewContext(pixels(l.page.W), pixels(l.page.H))}
	drawScene(s, snap, l, opt)
	return s
}

func pixels(v float32) int {
	n := int(math.Ceil(float64(v)))
	return max(1, min(n, maxPixels))
}

type ggSurface struct {
	dc     *gg.Context
	labels []label
}

// label is text drawn over the raster after all paths are filled.
type label struct {
	at  vector.Pt
	c   vector.Color
	txt string
}

func (s *ggSurface) background(c vector.Color) {
	s.dc.ClearWithColor(toRGBA(c))
}

func (s *ggSurface) drawPath(p vector.Path, paint vector.Paint) {
	if p.IsEmpty() {
		return
	}
	dc := s.dc
	dc.ClearPath()
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			dc.MoveTo(float64(d[0]), float64(d[1]))
		case vector.LineTo:
			dc.LineTo(float64(d[0]), float64(d[1]))
		case vector.QuadTo:
			dc.QuadraticTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]))
		case vector.CubicTo:
			dc.CubicTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]), float64(d[4]), float64(d[5]))
		case vector.Close:
			dc.ClosePath()
		}
	}
	setColor(dc, paint.Color)
	dc.SetLineWidth(float64(paint.Width))
	dc.SetLineCap(gg.LineCap(paint.Cap))
	dc.SetLineJoin(gg.LineJoin(paint.Join))
	if paint.Dashed() {
		dash := make([]float64, len(paint.Dash))
		for i, v := range paint.Dash {
			dash[i] = float64(v)
		}
		dc.SetDash(dash...)
		dc.SetDashOffset(float64(paint.DashPhase))
	} else {
		dc.ClearDash()
	}
	switch paint.Style {
	case vector.StyleFill:
		_ = dc.Fill()
	case vector.StyleFillAndStroke:
		_ = dc.FillPreserve()
		_ = dc.Stroke()
	default:
		_ = dc.Stroke()
	}
	dc.ClearDash()
}

func (s *ggSurface) rect(r vector.Rect, fill, stroke vector.Color, width float32) {
	dc := s.dc
	if fill.A > 0 {
		dc.ClearPath()
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		setColor(dc, fill)
		_ = dc.Fill()
	}
	if stroke.A > 0 && width > 0 {
		dc.ClearPath()
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
		setColor(dc, stroke)
		dc.SetLineWidth(float64(width))
		_ = dc.Stroke()
	}
}

// text is drawn with the fixed basic face regardless of size.
func (s *ggSurface) text(at vector.Pt, _ float32, c vector.Color, txt string) {
	if txt == "" || c.A == 0 {
		return
	}
	s.labels = append(s.labels, label{at: at, c: c, txt: txt})
}

func (s *ggSurface) measure(txt string, _ float32) float32 {
	return textlayout.BasicWidth(txt)
}

// image returns the rendered page with labels composited on top.
func (s *ggSurface) image() image.Image {
	img := s.dc.Image()
	if len(s.labels) == 0 {
		return img
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	for _, lb := range s.labels {
		textlayout.Draw(rgba, int(lb.at.X), int(lb.at.Y), color.NRGBA{R: lb.c.R, G: lb.c.G, B: lb.c.B, A: lb.c.A}, lb.txt)
	}
	return rgba
}

func setColor(dc *gg.Context, c vector.Color) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func toRGBA(c vector.Color) gg.RGBA {
	return gg.RGBA{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}
