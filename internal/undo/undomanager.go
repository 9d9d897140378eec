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

import "sync"

// Operation is a reversible mutation.
// Do is called exactly once, by Manager.Execute; afterwards the operation is
// toggled with Undo and Redo only.
type Operation interface {
	// Do applies the mutation and reports whether anything changed.
	Do() bool
	Undo()
	Redo()
}

// Config controls history depth.
type Config struct {
	// MaxDepth limits the number of undoable operations kept (0 means unlimited).
	// The oldest entries are dropped first.
	MaxDepth int
}

// Manager provides a linear undo/redo history of operations.
// It is safe for concurrent use, but operations run while the lock is held,
// so an operation must never call back into its Manager.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo []Operation
	redo []Operation
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	return &Manager{cfg: cfg}
}

// Execute runs op.Do. A successful operation is pushed onto the undo stack.
// The redo stack is cleared either way: a new action always ends the
// previous redo branch.
func (m *Manager) Execute(op Operation) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redo = nil
	if !op.Do() {
		return false
	}
	m.undo = append(m.undo, op)
	m.enforceCapsLocked()
	return true
}

// Undo reverts the most recent operation and moves it onto the redo stack.
// It is a no-op returning false when there is nothing to undo.
func (m *Manager) Undo() (Operation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return nil, false
	}
	op := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	op.Undo()
	m.redo = append(m.redo, op)
	return op, true
}

// Redo re-applies the most recently undone operation.
func (m *Manager) Redo() (Operation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redo) == 0 {
		return nil, false
	}
	op := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	op.Redo()
	m.undo = append(m.undo, op)
	m.enforceCapsLocked()
	return op, true
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = nil
	m.redo = nil
}

// Stats returns current stack depths for diagnostics.
func (m *Manager) Stats() (undoDepth, redoDepth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), len(m.redo)
}

func (m *Manager) enforceCapsLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		// drop the oldest extras
		toDrop := len(m.undo) - m.cfg.MaxDepth
		m.undo = append([]Operation{}, m.undo[toDrop:]...)
	}
}
