/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"fmt"
	"strings"

	"inkboard/internal/domain"
)

// ToolMode selects the active tool.
type ToolMode uint8

const (
	ModePen ToolMode = iota
	ModeEraser
	ModeLassoSelect
	ModeLassoMove
	ModeLaser
	ModeTape
	ModeStickyPostIt
	ModeStickyTextBox
	ModeStickyPainterImage
	ModeStickyVectorImage
	ModeStickyBitmapImage
)

var modeNames = [...]string{
	"pen", "eraser", "lasso_select", "lasso_move", "laser", "tape",
	"sticky_postit", "sticky_textbox", "sticky_painter_image", "sticky_vector_image", "sticky_bitmap_image",
}

func (m ToolMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("ToolMode(%d)", uint8(m))
}

// ParseToolMode accepts the names produced by String plus a few short aliases.
func ParseToolMode(s string) (ToolMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "lasso":
		return ModeLassoSelect, nil
	case "postit", "sticky":
		return ModeStickyPostIt, nil
	case "textbox":
		return ModeStickyTextBox, nil
	}
	for i, n := range modeNames {
		if n == s {
			return ToolMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool mode %q", s)
}

// StickyKind returns the item kind a sticky-placement mode creates.
func (m ToolMode) StickyKind() (domain.StickyKind, bool) {
	if m < ModeStickyPostIt || m > ModeStickyBitmapImage {
		return 0, false
	}
	return domain.StickyKind(m - ModeStickyPostIt), true
}

// StickyMode is the placement mode for kind k.
func StickyMode(k domain.StickyKind) ToolMode { return ModeStickyPostIt + ToolMode(k) }
