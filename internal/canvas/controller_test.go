/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"math"
	"testing"

	"inkboard/internal/vector"
)

func TestScenarioDrawTwoUndoRedo(t *testing.T) {
	h := newHarness(t)
	h.drag(pt(0, 0), pt(10, 10))
	h.drag(pt(0, 0), pt(10, 10))
	all := ids(h.c)
	if len(all) != 2 {
		t.Fatalf("expected 2 strokes, got %d", len(all))
	}
	h.c.Undo()
	if got := ids(h.c); len(got) != 1 || got[0] != all[0] {
		t.Fatalf("after undo: %v", got)
	}
	h.c.Redo()
	if got := ids(h.c); !equalState(got, all) {
		t.Fatalf("after redo: %v want %v", got, all)
	}
}

func TestScenarioLassoRectangle(t *testing.T) {
	c := New(DefaultConfig())
	sq := polyline(pt(10, 10), pt(20, 10), pt(20, 20), pt(10, 20))
	c.AddStroke(sq, sq, nil)
	if !c.SelectStrokes(closedRect(0, 0, 100, 100)) {
		t.Fatalf("expected selection")
	}
	if c.Mode() != ModeLassoMove {
		t.Fatalf("mode: %v", c.Mode())
	}
	sel, b := c.Selection()
	if len(sel) != 1 {
		t.Fatalf("selected %d", len(sel))
	}
	if want := vector.R(-10, -10, 40, 40); b != want {
		t.Fatalf("bounds %+v want %+v", b, want)
	}
}

func TestSelectNothingReturnsToLassoSelect(t *testing.T) {
	c := New(DefaultConfig())
	addLine(c, pt(10, 10), pt(20, 20))
	c.SelectStrokes(closedRect(0, 0, 100, 100))
	if c.SelectStrokes(closedRect(500, 500, 600, 600)) {
		t.Fatalf("unexpected selection")
	}
	if c.HasSelection() || c.Mode() != ModeLassoSelect {
		t.Fatalf("selection not cleared, mode %v", c.Mode())
	}
	if _, b := c.Selection(); !b.IsZero() {
		t.Fatalf("bounds should reset to zero: %+v", b)
	}
}

func TestSetToolModeClearsSelection(t *testing.T) {
	c := New(DefaultConfig())
	addLine(c, pt(10, 10), pt(20, 20))
	c.SelectStrokes(closedRect(0, 0, 100, 100))
	c.SetToolMode(ModePen)
	if c.HasSelection() || c.Mode() != ModePen {
		t.Fatalf("selection survived tool switch")
	}
	c.SetToolMode(ModeLassoMove)
	if c.Mode() != ModeLassoSelect {
		t.Fatalf("lasso-move without selection should fall back, got %v", c.Mode())
	}
}

func TestLassoMoveDragCommitsOnce(t *testing.T) {
	h := newHarness(t)
	addLine(h.c, pt(10, 10), pt(20, 20))
	h.c.SelectStrokes(closedRect(0, 0, 100, 100))
	before := h.c.Strokes()[0].Bounds()

	h.n.Process(press(1, pt(15, 15)))
	h.n.Process(press(1, pt(25, 15)))
	h.n.Process(press(1, pt(45, 25)))
	if got := h.c.Strokes()[0].Bounds(); got != before {
		t.Fatalf("stroke moved during drag: %+v", got)
	}
	snap := h.c.Snapshot()
	if snap.SelectionOffset != pt(30, 10) {
		t.Fatalf("preview offset %+v", snap.SelectionOffset)
	}
	if want := vector.R(20, 0, 40, 40); snap.SelectionBounds != want {
		t.Fatalf("preview bounds %+v want %+v", snap.SelectionBounds, want)
	}
	h.n.Process(release(1, pt(45, 25)))

	if got := h.c.Strokes()[0].Bounds(); got != before.Offset(pt(30, 10)) {
		t.Fatalf("stroke after drag %+v", got)
	}
	if u, _ := h.c.history.Stats(); u != 2 {
		t.Fatalf("expected insert + one translate in history, got %d", u)
	}
	if _, b := h.c.Selection(); b != vector.R(20, 0, 40, 40) {
		t.Fatalf("committed bounds %+v", b)
	}

	h.c.Undo()
	if got := h.c.Strokes()[0].Bounds(); got != before {
		t.Fatalf("undo should revert the whole drag: %+v", got)
	}
	if h.c.HasSelection() || h.c.Mode() != ModeLassoSelect {
		t.Fatalf("undo should clear selection, mode %v", h.c.Mode())
	}
}

func TestLassoMoveOutsideStartsNewSelection(t *testing.T) {
	h := newHarness(t)
	addLine(h.c, pt(10, 10), pt(20, 20))
	other := addLine(h.c, pt(300, 300), pt(310, 310))
	h.c.SelectStrokes(closedRect(0, 0, 100, 100))

	h.drag(pt(290, 290), pt(330, 290), pt(330, 330), pt(290, 330), pt(290, 292))
	if h.c.Mode() != ModeLassoMove {
		t.Fatalf("expected the new lasso to select, mode %v", h.c.Mode())
	}
	sel, _ := h.c.Selection()
	if len(sel) != 1 || sel[0].ID != other {
		t.Fatalf("expected only the second stroke selected")
	}
}

func TestUndoResetsInProgressGesture(t *testing.T) {
	h := newHarness(t)
	h.drag(pt(0, 0), pt(10, 10))
	h.n.Process(press(1, pt(50, 50)))
	h.n.Process(press(1, pt(60, 60)))
	h.c.Undo()
	if len(h.c.Snapshot().Pending) != 0 {
		t.Fatalf("undo must drop the in-progress stroke")
	}
	h.n.Process(release(1, pt(60, 60)))
	if h.c.StrokeCount() != 0 {
		t.Fatalf("reset pen must not commit on release, have %d", h.c.StrokeCount())
	}
}

func TestRefreshTickAndSubscribers(t *testing.T) {
	c := New(DefaultConfig())
	var seen []int
	unsub := c.Subscribe(func(tick int) { seen = append(seen, tick) })
	start := c.Tick()
	addLine(c, pt(0, 0), pt(1, 1))
	if c.Tick() == start || len(seen) == 0 || seen[len(seen)-1] != c.Tick() {
		t.Fatalf("subscriber not notified: %v tick=%d", seen, c.Tick())
	}
	unsub()
	n := len(seen)
	c.Undo()
	if len(seen) != n {
		t.Fatalf("unsubscribed callback still called")
	}
	c.tick = math.MaxInt32
	c.refresh()
	if c.Tick() != 0 {
		t.Fatalf("tick should wrap to 0, got %d", c.Tick())
	}
}

func TestPaintEditing(t *testing.T) {
	c := New(DefaultConfig())
	c.SetStrokeColor(vector.Red)
	c.SetStrokeWidth(9)
	c.SetStrokeWidth(-1)
	p := c.ActivePaint()
	if p.Color != vector.Red || p.Width != 9 {
		t.Fatalf("pen paint %+v", p)
	}
	s := c.AddStroke(polyline(pt(0, 0), pt(1, 1)), polyline(pt(0, 0), pt(1, 1)), nil)
	if s.Paint.Width != 9 {
		t.Fatalf("stroke did not take active paint")
	}
	c.SetToolMode(ModeLassoSelect)
	c.SetPaint(ModeLassoMove, vector.Pen(vector.Gray, 3))
	if c.ActivePaint().Width != 3 {
		t.Fatalf("lasso paints should be shared")
	}
	if c.Paint(ModePen).Width != 9 {
		t.Fatalf("pen paint changed by lasso edit")
	}
}

func TestViewportPinchDoesNotDraw(t *testing.T) {
	h := newHarness(t)
	h.pinch(pt(100, 100), pt(200, 100), pt(50, 100), pt(250, 100))
	if h.c.StrokeCount() != 0 {
		t.Fatalf("pinch should not draw")
	}
	v := h.c.Viewport()
	if v.Scale != 2 {
		t.Fatalf("viewport scale %v", v.Scale)
	}
	if got := v.ToCanvas(pt(150, 100)); got != pt(150, 100) {
		t.Fatalf("pinch centre should stay fixed, got %+v", got)
	}
	h.drag(pt(150, 100), pt(170, 100))
	s := h.c.Strokes()[0]
	if s.Samples[1] != pt(160, 100) {
		t.Fatalf("tool points must be mapped to canvas space: %+v", s.Samples)
	}
	h.c.ResetViewport()
	if h.c.Viewport() != identityViewport {
		t.Fatalf("reset viewport")
	}
}

func TestZoomDisabledKeepsViewport(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.ZoomEnabled = false })
	h.pinch(pt(100, 100), pt(200, 100), pt(50, 100), pt(250, 100))
	if h.c.Viewport() != identityViewport {
		t.Fatalf("viewport changed with zoom disabled: %+v", h.c.Viewport())
	}
}

func TestViewportZoomClamped(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.MaxZoom = 1.5 })
	h.pinch(pt(100, 100), pt(110, 100), pt(0, 100), pt(210, 100))
	if got := h.c.Viewport().Scale; got != 1.5 {
		t.Fatalf("scale should clamp to 1.5, got %v", got)
	}
}
