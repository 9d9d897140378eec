/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Gray        = Color{128, 128, 128, 255}
	Transparent = Color{0, 0, 0, 0}
)

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Hex formats c as #rrggbbaa.
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A) }

// ErrBadColor is returned by ParseColor for unrecognized input.
var ErrBadColor = errors.New("invalid color")

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa or an SVG/CSS color name.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty", ErrBadColor)
	}
	if !strings.HasPrefix(s, "#") {
		if s == "transparent" {
			return Transparent, nil
		}
		rgba, ok := colornames.Map[s]
		if !ok {
			return Color{}, fmt.Errorf("%w: unknown name %q", ErrBadColor, s)
		}
		return Color{rgba.R, rgba.G, rgba.B, rgba.A}, nil
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// PaintStyle selects whether a shape is filled, stroked or both.
type PaintStyle uint8

const (
	StyleStroke PaintStyle = iota
	StyleFill
	StyleFillAndStroke
)

// Paint describes how a path is drawn. It is a value type; Dash is copied by
// the With* helpers so two Paints never share a backing array.
type Paint struct {
	Color     Color
	Width     float32
	Cap       LineCap
	Join      LineJoin
	MiterLim  float32
	Style     PaintStyle
	Dash      []float32 // on/off lengths; empty means solid
	DashPhase float32
}

// Copy returns p with its own Dash slice.
func (p Paint) Copy() Paint {
	if p.Dash != nil {
		p.Dash = append([]float32(nil), p.Dash...)
	}
	return p
}

func (p Paint) WithColor(c Color) Paint      { q := p.Copy(); q.Color = c; return q }
func (p Paint) WithWidth(w float32) Paint    { q := p.Copy(); q.Width = w; return q }
func (p Paint) WithStyle(s PaintStyle) Paint { q := p.Copy(); q.Style = s; return q }
func (p Paint) WithDash(phase float32, lengths ...float32) Paint {
	q := p
	q.Dash = append([]float32(nil), lengths...)
	q.DashPhase = phase
	return q
}

// Dashed reports whether the paint has a usable dash pattern.
func (p Paint) Dashed() bool {
	for _, d := range p.Dash {
		if d > 0 {
			return true
		}
	}
	return false
}

// Pen returns a solid round-capped stroke paint.
func Pen(c Color, width float32) Paint {
	return Paint{Color: c, Width: width, Cap: CapRound, Join: JoinRound, MiterLim: 4, Style: StyleStroke}
}
