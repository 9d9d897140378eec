/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"testing"
)

func TestUndoRedoInverseLaw(t *testing.T) {
	c := New(DefaultConfig())
	var states [][]string
	record := func() { states = append(states, state(c)) }

	record()
	addLine(c, pt(0, 0), pt(10, 10))
	record()
	addLine(c, pt(20, 0), pt(30, 10))
	record()
	addLine(c, pt(50, 50), pt(60, 60))
	record()
	if !c.SelectStrokes(closedRect(-1, -1, 35, 15)) {
		t.Fatalf("expected selection")
	}
	if !c.TranslateSelection(pt(5, 7)) {
		t.Fatalf("translate failed")
	}
	record()
	if !c.RemoveStroke(closedRect(24, 6, 38, 20)) {
		t.Fatalf("remove failed")
	}
	record()

	for i := len(states) - 2; i >= 0; i-- {
		if !c.Undo() {
			t.Fatalf("undo %d failed", i)
		}
		if got := state(c); !equalState(got, states[i]) {
			t.Fatalf("after undo to %d:\n got %v\nwant %v", i, got, states[i])
		}
	}
	if c.Undo() {
		t.Fatalf("undo on empty history should be a no-op")
	}
	for i := 1; i < len(states); i++ {
		if !c.Redo() {
			t.Fatalf("redo %d failed", i)
		}
		if got := state(c); !equalState(got, states[i]) {
			t.Fatalf("after redo to %d:\n got %v\nwant %v", i, got, states[i])
		}
	}
	if c.Redo() {
		t.Fatalf("redo on empty stack should be a no-op")
	}
}

func TestNewOperationInvalidatesRedo(t *testing.T) {
	c := New(DefaultConfig())
	addLine(c, pt(0, 0), pt(10, 10))
	addLine(c, pt(0, 0), pt(10, 10))
	c.Undo()
	if !c.CanRedo() {
		t.Fatalf("expected redo after undo")
	}
	addLine(c, pt(5, 5), pt(6, 6))
	if c.CanRedo() || c.Redo() {
		t.Fatalf("redo must be cleared by a new operation")
	}
	if c.StrokeCount() != 2 {
		t.Fatalf("expected 2 strokes, got %d", c.StrokeCount())
	}
}

func TestRemoveSetRestoresZOrder(t *testing.T) {
	c := New(DefaultConfig())
	a := addLine(c, pt(0, 0), pt(10, 0))
	b := addLine(c, pt(0, 100), pt(10, 100))
	d := addLine(c, pt(0, 20), pt(10, 20))
	e := addLine(c, pt(0, 200), pt(10, 200))
	before := ids(c)

	if !c.SelectStrokes(closedRect(-5, -5, 15, 25)) {
		t.Fatalf("expected selection")
	}
	sel, _ := c.Selection()
	if len(sel) != 2 || sel[0].ID != a || sel[1].ID != d {
		t.Fatalf("unexpected selection order")
	}
	if !c.DeleteSelection() {
		t.Fatalf("delete failed")
	}
	if got := ids(c); len(got) != 2 || got[0] != b || got[1] != e {
		t.Fatalf("unexpected remaining strokes %v", got)
	}
	if c.HasSelection() || c.Mode() != ModeLassoSelect {
		t.Fatalf("delete should clear selection, mode=%v", c.Mode())
	}
	c.Undo()
	if got := ids(c); !equalState(got, before) {
		t.Fatalf("undo did not restore z-order: %v want %v", got, before)
	}
}

func TestClearIsOneStep(t *testing.T) {
	c := New(DefaultConfig())
	addLine(c, pt(0, 0), pt(1, 1))
	addLine(c, pt(2, 2), pt(3, 3))
	before := ids(c)
	if !c.Clear() || c.StrokeCount() != 0 {
		t.Fatalf("clear failed")
	}
	if c.Clear() {
		t.Fatalf("clearing an empty canvas should not record an operation")
	}
	c.Undo()
	if !equalState(ids(c), before) {
		t.Fatalf("undo clear: %v", ids(c))
	}
}

func TestTranslateOpMovesDetachedBounds(t *testing.T) {
	c := New(DefaultConfig())
	addLine(c, pt(10, 10), pt(20, 20))
	c.SelectStrokes(closedRect(0, 0, 100, 100))
	_, b0 := c.Selection()
	c.TranslateSelection(pt(10, 0))
	_, b1 := c.Selection()
	if b1 != b0.Offset(pt(10, 0)) {
		t.Fatalf("selection bounds not moved: %+v -> %+v", b0, b1)
	}
	c.Undo()
	if _, b := c.Selection(); !b.IsZero() {
		t.Fatalf("undo should clear selection, bounds %+v", b)
	}
	c.Redo()
	if _, b := c.Selection(); !b.IsZero() {
		t.Fatalf("redo must not resurrect old selection bounds: %+v", b)
	}
	if s := c.Strokes()[0]; s.Transform.Translation() != pt(10, 0) {
		t.Fatalf("redo did not move stroke: %+v", s.Transform)
	}
}
