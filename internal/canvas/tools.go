/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"inkboard/internal/vector"
)

// Motion is one gesture step in canvas coordinates.
type Motion struct {
	Prev, Cur vector.Pt
	Zoom      float32
	Multi     bool
}

// Tool is a per-mode state machine fed by the controller's gesture
// callbacks. Tools hold a back reference to their controller and mutate it
// only through its methods.
type Tool interface {
	Mode() ToolMode
	Begin(p vector.Pt)
	Move(m Motion)
	End(multiTouch bool)
	// Cancel discards uncommitted state.
	Cancel()
	// Reset drops all transient state without committing.
	Reset()
	// Pending returns the in-progress geometry to draw this frame.
	Pending() []vector.Path
}

// hitLoopSize is the half-diagonal of the diamond stamped into a pen
// stroke's hit area at every sample.
const hitLoopSize = 2

// penTool: Idle -> Drawing -> commit -> Idle.
type penTool struct {
	c        *Controller
	drawing  bool
	advanced bool
	rendered vector.Path
	hit      vector.Path
	samples  []vector.Pt
	prev     vector.Pt
}

func (t *penTool) Mode() ToolMode { return ModePen }

func (t *penTool) Begin(p vector.Pt) {
	t.Reset()
	t.drawing = true
	t.rendered.MoveToPt(p)
	t.rendered.LineToPt(p)
	t.hit.MoveToPt(p)
	t.hit.LineToPt(p)
	t.samples = append(t.samples, p)
	t.prev = p
	t.c.refresh()
}

// Move extends both paths with a quadratic through the midpoint of the last
// two samples. Multi-touch steps leave the stroke where it is.
func (t *penTool) Move(m Motion) {
	if !t.drawing || m.Multi {
		return
	}
	cur := m.Cur
	mid := t.prev.Mid(cur)
	t.rendered.QuadToPt(t.prev, mid)
	t.hit.QuadToPt(t.prev, mid)
	t.hit.Append(vector.Diamond(cur, hitLoopSize))
	t.hit.MoveToPt(mid)
	t.samples = append(t.samples, cur)
	t.prev = cur
	t.advanced = true
	t.c.refresh()
}

// End commits the stroke. A gesture that turned multi-touch before drawing
// anything is a pan or zoom and is dropped.
func (t *penTool) End(multiTouch bool) {
	if !t.drawing {
		return
	}
	if multiTouch && !t.advanced {
		t.Reset()
		t.c.refresh()
		return
	}
	t.rendered.LineToPt(t.prev)
	t.hit.LineToPt(t.prev)
	t.c.AddStroke(t.rendered, t.hit, t.samples)
	t.Reset()
}

func (t *penTool) Cancel() { t.Reset() }

func (t *penTool) Reset() {
	t.drawing = false
	t.advanced = false
	t.rendered.Reset()
	t.hit.Reset()
	t.samples = nil
}

func (t *penTool) Pending() []vector.Path {
	if !t.drawing {
		return nil
	}
	return []vector.Path{t.rendered.Clone()}
}

// eraserTool removes at most the topmost stroke under the probe circle on
// every move.
type eraserTool struct {
	c       *Controller
	active  bool
	probe   vector.Path
	cursor  vector.Pt
	showing bool
}

func (t *eraserTool) Mode() ToolMode { return ModeEraser }

func (t *eraserTool) Begin(p vector.Pt) {
	t.active = true
	t.probe.Reset()
	t.cursor = p
}

func (t *eraserTool) Move(m Motion) {
	if !t.active || m.Multi {
		return
	}
	t.cursor = m.Cur
	t.showing = true
	t.probe = vector.Circle(m.Cur, t.c.cfg.EraserRadius)
	if !t.c.RemoveStroke(t.probe) {
		t.c.refresh()
	}
}

func (t *eraserTool) End(bool) {
	t.Reset()
	t.c.refresh()
}

func (t *eraserTool) Cancel() { t.Reset() }

func (t *eraserTool) Reset() {
	t.active = false
	t.showing = false
	t.probe.Reset()
}

func (t *eraserTool) Pending() []vector.Path { return nil }

// Cursor returns the indicator position while the eraser is showing.
func (t *eraserTool) Cursor() (vector.Pt, bool) { return t.cursor, t.showing }

// lassoSelectTool draws a smoothed lasso and selects on release.
type lassoSelectTool struct {
	c      *Controller
	active bool
	tap    bool
	path   vector.Path
	first  vector.Pt
	prev   vector.Pt
}

func (t *lassoSelectTool) Mode() ToolMode { return ModeLassoSelect }

func (t *lassoSelectTool) Begin(p vector.Pt) {
	t.Reset()
	t.active = true
	t.tap = true
	t.path.MoveToPt(p)
	t.first, t.prev = p, p
	t.c.refresh()
}

func (t *lassoSelectTool) Move(m Motion) {
	if !t.active || m.Multi {
		return
	}
	t.tap = false
	t.path.QuadToPt(t.prev, t.prev.Mid(m.Cur))
	t.prev = m.Cur
	t.c.refresh()
}

// End closes the lasso, or substitutes a tap disk when the pointer never
// moved, and runs the selection. Multi-touch gestures select nothing.
func (t *lassoSelectTool) End(multiTouch bool) {
	if !t.active {
		return
	}
	if multiTouch {
		t.Reset()
		t.c.refresh()
		return
	}
	var probe vector.Path
	if t.tap {
		probe = TapProbe(t.first, t.c.cfg.TapRadius)
	} else {
		probe = t.path.Clone()
		probe.LineToPt(t.prev)
		probe.Close()
	}
	t.Reset()
	t.c.SelectStrokes(probe)
}

func (t *lassoSelectTool) Cancel() { t.Reset() }

func (t *lassoSelectTool) Reset() {
	t.active = false
	t.tap = false
	t.path.Reset()
}

func (t *lassoSelectTool) Pending() []vector.Path {
	if !t.active || t.tap {
		return nil
	}
	return []vector.Path{t.path.Clone()}
}

// lassoMoveTool drags the selection. During the drag only a preview offset
// changes; the strokes move once, at release, through one translate operation.
type lassoMoveTool struct {
	c        *Controller
	dragging bool
	start    vector.Pt
	last     vector.Pt
}

func (t *lassoMoveTool) Mode() ToolMode { return ModeLassoMove }

// Begin outside the selection bounds starts a new selection instead.
func (t *lassoMoveTool) Begin(p vector.Pt) {
	t.Reset()
	if !t.c.HasSelection() || !t.c.sel.bounds.Contains(p) {
		t.c.SetToolMode(ModeLassoSelect)
		t.c.tool().Begin(p)
		return
	}
	t.dragging = true
	t.start, t.last = p, p
}

func (t *lassoMoveTool) Move(m Motion) {
	if !t.dragging || m.Multi {
		return
	}
	t.last = m.Cur
	t.c.sel.preview = t.last.Sub(t.start)
	t.c.refresh()
}

func (t *lassoMoveTool) End(bool) {
	if !t.dragging {
		return
	}
	offset := t.last.Sub(t.start)
	t.Reset()
	if !t.c.TranslateSelection(offset) {
		t.c.refresh()
	}
}

func (t *lassoMoveTool) Cancel() { t.Reset() }

func (t *lassoMoveTool) Reset() {
	t.dragging = false
	t.c.sel.preview = vector.Pt{}
}

func (t *lassoMoveTool) Pending() []vector.Path { return nil }
