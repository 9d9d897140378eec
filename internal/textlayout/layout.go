/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout breaks sticky-item text into lines and draws labels
// onto raster images.
//
// Measurement is pluggable so the PDF writer can wrap with its own font
// metrics while raster output uses the fixed basic face.
package textlayout

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Measurer returns the advance width of s.
type Measurer func(s string) float32

// Metrics of the basic raster face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the baseline-to-baseline distance.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

var face font.Face = basicfont.Face7x13

// BasicMetrics returns the metrics of the face used by Draw.
func BasicMetrics() Metrics {
	m := face.Metrics()
	return Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// BasicWidth measures s with the basic raster face.
func BasicWidth(s string) float32 {
	d := &font.Drawer{Face: face}
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Wrap splits text at newlines and then word-wraps each paragraph to
// maxWidth. Words wider than maxWidth get a line of their own. A
// maxWidth <= 0 disables wrapping.
func Wrap(text string, maxWidth float32, measure Measurer) []string {
	if measure == nil {
		measure = BasicWidth
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if measure(next) > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}

// Draw renders s with the basic face so its baseline starts at (x, y).
func Draw(dst draw.Image, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
