/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import "testing"

// counterOp adds delta to a shared counter.
type counterOp struct {
	n     *int
	delta int
}

func (o *counterOp) Do() bool {
	if o.delta == 0 {
		return false
	}
	*o.n += o.delta
	return true
}
func (o *counterOp) Undo() { *o.n -= o.delta }
func (o *counterOp) Redo() { *o.n += o.delta }

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{})
	n := 0
	m.Execute(&counterOp{&n, 1})
	m.Execute(&counterOp{&n, 10})
	if u, r := m.Stats(); u != 2 || r != 0 {
		t.Fatalf("expected 2 undo and 0 redo entries, got undo=%d redo=%d", u, r)
	}
	if _, ok := m.Undo(); !ok || n != 1 {
		t.Fatalf("undo expected n=1, got ok=%v n=%d", ok, n)
	}
	if _, ok := m.Redo(); !ok || n != 11 {
		t.Fatalf("redo expected n=11, got ok=%v n=%d", ok, n)
	}
}

func TestFailedOperationNotRecorded(t *testing.T) {
	m := NewManager(Config{})
	n := 0
	if m.Execute(&counterOp{&n, 0}) {
		t.Fatalf("no-op operation should report false")
	}
	if m.CanUndo() {
		t.Fatalf("failed operation must not be pushed")
	}
}

func TestNewOperationClearsRedo(t *testing.T) {
	m := NewManager(Config{})
	n := 0
	m.Execute(&counterOp{&n, 1})
	m.Undo()
	if !m.CanRedo() {
		t.Fatalf("expected redo entry after undo")
	}
	m.Execute(&counterOp{&n, 5})
	if m.CanRedo() {
		t.Fatalf("new operation must clear redo stack")
	}
	if _, ok := m.Redo(); ok || n != 5 {
		t.Fatalf("redo after invalidation should be a no-op, n=%d", n)
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	m := NewManager(Config{})
	if _, ok := m.Undo(); ok {
		t.Fatalf("undo on empty stack should report false")
	}
	if _, ok := m.Redo(); ok {
		t.Fatalf("redo on empty stack should report false")
	}
}

func TestCaps(t *testing.T) {
	m := NewManager(Config{MaxDepth: 2})
	n := 0
	for i := 0; i < 10; i++ {
		m.Execute(&counterOp{&n, 1})
	}
	if u, _ := m.Stats(); u != 2 {
		t.Fatalf("expected MaxDepth cap to limit to 2, got %d", u)
	}
	m.Undo()
	m.Undo()
	if _, ok := m.Undo(); ok {
		t.Fatalf("oldest entries should have been dropped")
	}
	if n != 8 {
		t.Fatalf("expected n=8 after two undos, got %d", n)
	}
}

func TestClear(t *testing.T) {
	m := NewManager(Config{})
	n := 0
	m.Execute(&counterOp{&n, 1})
	m.Execute(&counterOp{&n, 1})
	m.Undo()
	m.Clear()
	if u, r := m.Stats(); u != 0 || r != 0 {
		t.Fatalf("expected empty stacks after Clear, got undo=%d redo=%d", u, r)
	}
}
