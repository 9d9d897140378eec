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
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"inkboard/internal/canvas"
	"inkboard/internal/vector"
)

// WritePDF renders snap onto a single PDF page at outPath.
func WritePDF(snap canvas.Snapshot, outPath string, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	pdf := buildPDF(snap, opt)
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// EncodePDF renders snap as PDF into w.
func EncodePDF(snap canvas.Snapshot, w io.Writer, opt Options) error {
	pdf := buildPDF(snap, opt)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("encode pdf: %w", err)
	}
	return nil
}

func buildPDF(snap canvas.Snapshot, opt Options) *gofpdf.Fpdf {
	opt = opt.normalized()
	l := newLayout(snap, opt)

	// Use points for 1:1 mapping from canvas units
	size := gofpdf.SizeType{Wd: float64(l.page.W), Ht: float64(l.page.H)}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetTitle(fmt.Sprintf("Canvas snapshot (tick %d)", snap.Tick), false)
	pdf.SetCreator("inkboard", false)
	pdf.SetAutoPageBreak(false, 0)
	// Built-in Helvetica keeps text vector without embedding
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPageFormat("", size)

	drawScene(&pdfSurface{pdf: pdf, page: l.page}, snap, l, opt)
	return pdf
}

type pdfSurface struct {
	pdf  *gofpdf.Fpdf
	page vector.Size
}

func (s *pdfSurface) background(c vector.Color) {
	if c.A == 0 {
		return
	}
	setFillColor(s.pdf, c)
	s.pdf.Rect(0, 0, float64(s.page.W), float64(s.page.H), "F")
}

func (s *pdfSurface) drawPath(p vector.Path, paint vector.Paint) {
	if p.IsEmpty() {
		return
	}
	// graphics state must be set before the path is begun
	setAlpha(s.pdf, paint.Color)
	setDrawColor(s.pdf, paint.Color)
	setFillColor(s.pdf, paint.Color)
	s.pdf.SetLineWidth(float64(paint.Width))
	s.pdf.SetLineCapStyle(capName(paint.Cap))
	s.pdf.SetLineJoinStyle(joinName(paint.Join))
	if paint.Dashed() {
		dash := make([]float64, len(paint.Dash))
		for i, v := range paint.Dash {
			dash[i] = float64(v)
		}
		s.pdf.SetDashPattern(dash, float64(paint.DashPhase))
	} else {
		s.pdf.SetDashPattern(nil, 0)
	}
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			s.pdf.MoveTo(float64(d[0]), float64(d[1]))
		case vector.LineTo:
			s.pdf.LineTo(float64(d[0]), float64(d[1]))
		case vector.QuadTo:
			s.pdf.CurveTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]))
		case vector.CubicTo:
			s.pdf.CurveBezierCubicTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]), float64(d[4]), float64(d[5]))
		case vector.Close:
			s.pdf.ClosePath()
		}
	}
	switch paint.Style {
	case vector.StyleFill:
		s.pdf.DrawPath("F")
	case vector.StyleFillAndStroke:
		s.pdf.DrawPath("FD")
	default:
		s.pdf.DrawPath("D")
	}
	s.pdf.SetAlpha(1, "Normal")
	s.pdf.SetDashPattern(nil, 0)
}

func (s *pdfSurface) rect(r vector.Rect, fill, stroke vector.Color, width float32) {
	style := ""
	if fill.A > 0 {
		setFillColor(s.pdf, fill)
		style += "F"
	}
	if stroke.A > 0 && width > 0 {
		setDrawColor(s.pdf, stroke)
		s.pdf.SetLineWidth(float64(width))
		style += "D"
	}
	if style == "" {
		return
	}
	s.pdf.Rect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), style)
}

func (s *pdfSurface) text(at vector.Pt, size float32, c vector.Color, txt string) {
	if txt == "" {
		return
	}
	s.pdf.SetFontSize(float64(size))
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	s.pdf.Text(float64(at.X), float64(at.Y), txt)
}

func (s *pdfSurface) measure(txt string, size float32) float32 {
	s.pdf.SetFontSize(float64(size))
	return float32(s.pdf.GetStringWidth(txt))
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setAlpha(pdf *gofpdf.Fpdf, c vector.Color) {
	if c.A < 255 {
		pdf.SetAlpha(float64(c.A)/255, "Normal")
	}
}

func capName(c vector.LineCap) string {
	switch c {
	case vector.CapRound:
		return "round"
	case vector.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func joinName(j vector.LineJoin) string {
	switch j {
	case vector.JoinRound:
		return "round"
	case vector.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}
