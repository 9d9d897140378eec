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

// Tape items are placed and removed outside the undo history.

// Tapes returns the placed tape items, oldest first.
func (c *Controller) Tapes() []domain.TapeItem {
	out := make([]domain.TapeItem, len(c.tapes))
	for i, t := range c.tapes {
		out[i] = t
		out[i].Path = t.Path.Clone()
	}
	return out
}

// AddTape lays a strip from start to end with the tape paint.
func (c *Controller) AddTape(start, end vector.Pt) domain.TapeItem {
	p := c.Paint(ModeTape)
	t := domain.NewTape(start, end, p.Width, p)
	c.tapes = append(c.tapes, t)
	c.log.Debug("tape placed", "id", t.ID, "length", t.Length(), "rotation", t.Rotation())
	c.refresh()
	return t
}

// ToggleTapesAt flips the selection of every tape under a tap disk at p and
// returns how many were toggled.
func (c *Controller) ToggleTapesAt(p vector.Pt) int {
	probe := TapProbe(p, c.cfg.TapRadius)
	n := 0
	for _, t := range c.tapes {
		if !probe.Intersects(&t.Path) {
			continue
		}
		if c.tapeSel[t.ID] {
			delete(c.tapeSel, t.ID)
		} else {
			c.tapeSel[t.ID] = true
		}
		n++
	}
	if n > 0 {
		c.refresh()
	}
	return n
}

func (c *Controller) TapeSelected(id string) bool { return c.tapeSel[id] }

// RemoveTape deletes a tape by id.
func (c *Controller) RemoveTape(id string) bool {
	for i, t := range c.tapes {
		if t.ID == id {
			c.tapes = append(c.tapes[:i], c.tapes[i+1:]...)
			delete(c.tapeSel, id)
			c.refresh()
			return true
		}
	}
	return false
}

// DeleteSelectedTapes removes every selected tape and returns the count.
func (c *Controller) DeleteSelectedTapes() int {
	kept := c.tapes[:0]
	n := 0
	for _, t := range c.tapes {
		if c.tapeSel[t.ID] {
			n++
			continue
		}
		kept = append(kept, t)
	}
	c.tapes = kept
	clear(c.tapeSel)
	if n > 0 {
		c.refresh()
	}
	return n
}

// tapeTool: a drag lays a strip, a tap toggles selection.
type tapeTool struct {
	c      *Controller
	active bool
	moved  bool
	start  vector.Pt
	last   vector.Pt
}

func (t *tapeTool) Mode() ToolMode { return ModeTape }

func (t *tapeTool) Begin(p vector.Pt) {
	t.Reset()
	t.active = true
	t.start, t.last = p, p
}

func (t *tapeTool) Move(m Motion) {
	if !t.active || m.Multi {
		return
	}
	t.moved = true
	t.last = m.Cur
	t.c.refresh()
}

func (t *tapeTool) End(multiTouch bool) {
	if !t.active {
		return
	}
	start, last, moved := t.start, t.last, t.moved
	t.Reset()
	switch {
	case multiTouch:
		t.c.refresh()
	case !moved:
		t.c.ToggleTapesAt(start)
	case start != last:
		t.c.AddTape(start, last)
	}
}

func (t *tapeTool) Cancel() { t.Reset() }

func (t *tapeTool) Reset() {
	t.active = false
	t.moved = false
}

// Pending previews the strip being dragged.
func (t *tapeTool) Pending() []vector.Path {
	if !t.active || !t.moved || t.start == t.last {
		return nil
	}
	return []vector.Path{domain.TapeOutline(t.start, t.last, t.c.paints[ModeTape].Width)}
}
