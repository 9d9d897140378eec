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

// Sticky items are edited in place by id and are not part of the undo history.

// Stickies returns the placed items bottom to top.
func (c *Controller) Stickies() []domain.StickyItem {
	return append([]domain.StickyItem(nil), c.stickies...)
}

func (c *Controller) Sticky(id string) (domain.StickyItem, bool) {
	if i := c.stickyIndex(id); i >= 0 {
		return c.stickies[i], true
	}
	return domain.StickyItem{}, false
}

func (c *Controller) stickyIndex(id string) int {
	for i := range c.stickies {
		if c.stickies[i].ID == id {
			return i
		}
	}
	return -1
}

// StickyAt returns the topmost item whose bounds contain p.
func (c *Controller) StickyAt(p vector.Pt) (domain.StickyItem, bool) {
	for i := len(c.stickies) - 1; i >= 0; i-- {
		if c.stickies[i].Bounds().Contains(p) {
			return c.stickies[i], true
		}
	}
	return domain.StickyItem{}, false
}

// AddSticky places a new item of kind k at p. A nil prop uses the kind default.
func (c *Controller) AddSticky(k domain.StickyKind, at vector.Pt, prop domain.Property) (domain.StickyItem, error) {
	s, err := domain.NewSticky(k, at, prop)
	if err != nil {
		return domain.StickyItem{}, err
	}
	c.stickies = append(c.stickies, s)
	c.log.Debug("sticky placed", "id", s.ID, "kind", k)
	c.refresh()
	return s, nil
}

// UpdateSticky replaces item id with fn's result. The id and kind cannot change.
func (c *Controller) UpdateSticky(id string, fn func(domain.StickyItem) domain.StickyItem) bool {
	i := c.stickyIndex(id)
	if i < 0 {
		return false
	}
	old := c.stickies[i]
	next := fn(old)
	next.ID, next.Kind = old.ID, old.Kind
	if next.Property == nil || next.Property.Kind() != old.Kind {
		next.Property = old.Property
	}
	next.Focused = next.Focused && old.Kind.TextBearing()
	if next.Focused && !old.Focused {
		// focus is exclusive
		c.clearFocus()
	}
	c.stickies[i] = next
	c.refresh()
	return true
}

func (c *Controller) RemoveSticky(id string) bool {
	i := c.stickyIndex(id)
	if i < 0 {
		return false
	}
	c.stickies = append(c.stickies[:i], c.stickies[i+1:]...)
	c.refresh()
	return true
}

// FocusSticky gives item id the editing focus after clearing it everywhere
// else. Items without text cannot take focus; the call then only clears.
func (c *Controller) FocusSticky(id string) bool {
	i := c.stickyIndex(id)
	c.clearFocus()
	ok := i >= 0 && c.stickies[i].Kind.TextBearing()
	if ok {
		c.stickies[i] = c.stickies[i].WithFocus(true)
	}
	c.refresh()
	return ok
}

// ClearFocus removes the editing focus from every item.
func (c *Controller) ClearFocus() {
	if c.clearFocus() {
		c.refresh()
	}
}

func (c *Controller) clearFocus() bool {
	changed := false
	for i := range c.stickies {
		if c.stickies[i].Focused {
			c.stickies[i] = c.stickies[i].WithFocus(false)
			changed = true
		}
	}
	return changed
}

// FocusedSticky returns the item holding the editing focus.
func (c *Controller) FocusedSticky() (domain.StickyItem, bool) {
	for _, s := range c.stickies {
		if s.Focused {
			return s, true
		}
	}
	return domain.StickyItem{}, false
}

func (c *Controller) TranslateSticky(id string, d vector.Pt) bool {
	return c.UpdateSticky(id, func(s domain.StickyItem) domain.StickyItem { return s.Moved(d) })
}

// ScaleSticky multiplies the item's scale by zoom, clamped to
// [1, MaxStickyScale], keeping pivot fixed on the canvas.
func (c *Controller) ScaleSticky(id string, zoom float32, pivot vector.Pt) bool {
	return c.UpdateSticky(id, func(s domain.StickyItem) domain.StickyItem {
		f0 := s.ScaleFactor
		if f0 <= 0 {
			f0 = 1
		}
		f1 := vector.Clamp(f0*zoom, 1, c.cfg.MaxStickyScale)
		o := s.Origin()
		origin := pivot.Sub(pivot.Sub(o).Scale(f1 / f0))
		return s.WithScale(f1, s.ScaleOffset.Add(origin.Sub(o)))
	})
}

func (c *Controller) SetStickyText(id, text string) bool {
	i := c.stickyIndex(id)
	if i < 0 || !c.stickies[i].Kind.TextBearing() {
		return false
	}
	c.stickies[i] = c.stickies[i].WithText(text)
	c.refresh()
	return true
}

// stickyTool places items of one kind. A tap on empty canvas places an
// item, a tap on a text item focuses it, a drag that starts on an item
// moves it and a pinch over it scales it.
type stickyTool struct {
	c       *Controller
	kind    domain.StickyKind
	active  bool
	moved   bool
	start   vector.Pt
	grabbed string
}

func (t *stickyTool) Mode() ToolMode { return StickyMode(t.kind) }

func (t *stickyTool) Begin(p vector.Pt) {
	t.Reset()
	t.active = true
	t.start = p
	if s, ok := t.c.StickyAt(p); ok {
		t.grabbed = s.ID
	}
}

func (t *stickyTool) Move(m Motion) {
	if !t.active {
		return
	}
	t.moved = true
	if t.grabbed == "" {
		return
	}
	if m.Multi {
		if m.Zoom != 1 {
			t.c.ScaleSticky(t.grabbed, m.Zoom, m.Cur)
		}
		return
	}
	t.c.TranslateSticky(t.grabbed, m.Cur.Sub(m.Prev))
}

func (t *stickyTool) End(multiTouch bool) {
	if !t.active {
		return
	}
	start, grabbed, tap := t.start, t.grabbed, !t.moved && !multiTouch
	t.Reset()
	if !tap {
		return
	}
	if grabbed != "" {
		t.c.FocusSticky(grabbed)
		return
	}
	t.c.ClearFocus()
	if _, err := t.c.AddSticky(t.kind, start, nil); err != nil {
		t.c.log.Error("sticky placement failed", "kind", t.kind, "err", err)
	}
}

func (t *stickyTool) Cancel() { t.Reset() }

func (t *stickyTool) Reset() {
	t.active = false
	t.moved = false
	t.grabbed = ""
}

func (t *stickyTool) Pending() []vector.Path { return nil }

// holdsGesture keeps the viewport still while an item is being pinched.
func (t *stickyTool) holdsGesture() bool { return t.active && t.grabbed != "" }
