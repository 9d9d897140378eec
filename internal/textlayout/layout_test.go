/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"image"
	"image/color"
	"testing"
)

func TestWrap_BreaksAtWidth(t *testing.T) {
	lines := Wrap("Hello world from Go", 50, nil)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %q", lines)
	}
	for _, l := range lines {
		if BasicWidth(l) > 50 && len(l) > 0 && !isSingleWord(l) {
			t.Fatalf("line %q exceeds width", l)
		}
	}
}

func isSingleWord(s string) bool {
	for _, r := range s {
		if r == ' ' {
			return false
		}
	}
	return true
}

func TestWrap_KeepsNewlinesAndEmptyParagraphs(t *testing.T) {
	lines := Wrap("a\n\nb", 0, nil)
	if len(lines) != 3 || lines[0] != "a" || lines[1] != "" || lines[2] != "b" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestWrap_CustomMeasurer(t *testing.T) {
	byRune := func(s string) float32 { return float32(len(s)) }
	lines := Wrap("aa bb cc", 5, byRune)
	if len(lines) != 2 || lines[0] != "aa bb" || lines[1] != "cc" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestBasicWidth_Additive(t *testing.T) {
	if BasicWidth("ABC") != BasicWidth("A")+BasicWidth("BC") {
		t.Fatalf("fixed-width face should measure additively")
	}
	if m := BasicMetrics(); m.LineHeight() <= 0 || m.Ascent <= 0 {
		t.Fatalf("metrics = %+v", m)
	}
}

func TestDraw_PaintsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	Draw(img, 2, 14, color.Black, "W")
	inked := false
	for y := 0; y < 20 && !inked; y++ {
		for x := 0; x < 40; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Fatalf("expected glyph pixels")
	}
}
