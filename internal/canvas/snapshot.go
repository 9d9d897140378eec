/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"inkboard/internal/domain"
	"inkboard/internal/vector"
)

// EraserCursor is the eraser indicator the render layer draws.
type EraserCursor struct {
	Center vector.Pt
	Radius float32
}

// Snapshot is everything the render layer needs for one frame. It shares
// nothing mutable with the controller.
type Snapshot struct {
	Tick  int
	Mode  ToolMode
	Paint vector.Paint

	Strokes  []*domain.StrokePath
	Stickies []domain.StickyItem
	Tapes    []domain.TapeItem
	// SelectedTapes holds the ids of selected tape items.
	SelectedTapes []string

	LaserPaths  []vector.Path
	LaserPaint  vector.Paint
	LaserActive bool

	// Selected holds the ids of selected strokes. SelectionOffset is the live
	// drag offset to draw them with; SelectionBounds already includes it.
	Selected        []string
	SelectionBounds vector.Rect
	SelectionOffset vector.Pt

	// Pending is the active tool's in-progress geometry, drawn with Paint.
	Pending []vector.Path
	Eraser  *EraserCursor

	Viewport   Viewport
	Background Background
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        c.tick,
		Mode:        c.mode,
		Paint:       c.ActivePaint(),
		Stickies:    c.Stickies(),
		Tapes:       c.Tapes(),
		LaserPaths:  c.LaserPaths(),
		LaserPaint:  c.Paint(ModeLaser),
		LaserActive: c.laserActive,
		Pending:     c.tool().Pending(),
		Viewport:    c.view,
		Background:  c.cfg.Background,
	}
	s.Strokes = make([]*domain.StrokePath, len(c.strokes.items))
	for i, st := range c.strokes.items {
		s.Strokes[i] = st.Clone()
	}
	for _, t := range c.tapes {
		if c.tapeSel[t.ID] {
			s.SelectedTapes = append(s.SelectedTapes, t.ID)
		}
	}
	sel, bounds := c.Selection()
	for _, st := range sel {
		s.Selected = append(s.Selected, st.ID)
	}
	s.SelectionBounds = bounds
	s.SelectionOffset = c.sel.preview
	if e, ok := c.tool().(*eraserTool); ok && c.cfg.ShowEraser {
		if at, showing := e.Cursor(); showing {
			s.Eraser = &EraserCursor{Center: at, Radius: c.cfg.EraserRadius}
		}
	}
	return s
}

// IsSelected reports whether the stroke with id is in the snapshot's selection.
func (s Snapshot) IsSelected(id string) bool {
	for _, x := range s.Selected {
		if x == id {
			return true
		}
	}
	return false
}
