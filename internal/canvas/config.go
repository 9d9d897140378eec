/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"time"

	"inkboard/internal/domain"
	"inkboard/internal/vector"
)

// Insets is a per-edge padding.
type Insets struct{ Left, Top, Right, Bottom float32 }

// Uniform returns the same padding on every edge.
func Uniform(p float32) Insets { return Insets{p, p, p, p} }

// Expand grows r by the insets. A zero rectangle stays zero.
func (in Insets) Expand(r vector.Rect) vector.Rect {
	if r.IsZero() {
		return r
	}
	return vector.Rect{X: r.X - in.Left, Y: r.Y - in.Top, W: r.W + in.Left + in.Right, H: r.H + in.Top + in.Bottom}
}

// Background is what the render layer paints behind the content.
type Background struct {
	Color vector.Color
	Image string // reference resolved by the render layer
	Fit   domain.ContentFit
}

// Config is accepted at construction time. Zero fields fall back to
// DefaultConfig values via normalize.
type Config struct {
	ZoomEnabled bool
	MinZoom     float32
	MaxZoom     float32

	ShowEraser   bool
	EraserRadius float32

	PenPaint   vector.Paint
	LassoPaint vector.Paint
	LaserPaint vector.Paint
	TapePaint  vector.Paint

	SelectionPadding Insets
	TapRadius        float32
	TouchSlop        float32
	LaserFadeDelay   time.Duration
	MaxStickyScale   float32
	// UndoDepth caps the history (0 means unlimited).
	UndoDepth int

	Background Background
}

// DefaultConfig returns the stock canvas settings.
func DefaultConfig() Config {
	lasso := vector.Pen(vector.Gray, 2).WithDash(0, 8, 6)
	return Config{
		ZoomEnabled:      true,
		MinZoom:          0.25,
		MaxZoom:          8,
		ShowEraser:       true,
		EraserRadius:     20,
		PenPaint:         vector.Pen(vector.Black, 4),
		LassoPaint:       lasso,
		LaserPaint:       vector.Pen(vector.Red, 6),
		TapePaint:        vector.Pen(vector.Color{R: 230, G: 220, B: 160, A: 200}, 20).WithStyle(vector.StyleFill),
		SelectionPadding: Uniform(20),
		TapRadius:        10,
		TouchSlop:        0,
		LaserFadeDelay:   1500 * time.Millisecond,
		MaxStickyScale:   5,
		Background:       Background{Color: vector.White, Fit: domain.FitContain},
	}
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.MinZoom <= 0 {
		c.MinZoom = d.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = max(d.MaxZoom, c.MinZoom)
	}
	if c.EraserRadius <= 0 {
		c.EraserRadius = d.EraserRadius
	}
	if c.PenPaint.Width <= 0 {
		c.PenPaint = d.PenPaint
	}
	if c.LassoPaint.Width <= 0 {
		c.LassoPaint = d.LassoPaint
	}
	if c.LaserPaint.Width <= 0 {
		c.LaserPaint = d.LaserPaint
	}
	if c.TapePaint.Width <= 0 {
		c.TapePaint = d.TapePaint
	}
	if c.TapRadius <= 0 {
		c.TapRadius = d.TapRadius
	}
	if c.TouchSlop < 0 {
		c.TouchSlop = 0
	}
	if c.LaserFadeDelay <= 0 {
		c.LaserFadeDelay = d.LaserFadeDelay
	}
	if c.MaxStickyScale < 1 {
		c.MaxStickyScale = d.MaxStickyScale
	}
	if c.UndoDepth < 0 {
		c.UndoDepth = 0
	}
	return c
}
