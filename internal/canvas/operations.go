/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

// Concrete undoable operations over the stroke collection. Each one is
// executed once through undo.Manager.Execute and afterwards only toggled
// with Undo and Redo.

import (
	"slices"

	"inkboard/internal/domain"
	"inkboard/internal/vector"
)

// strokeList is the z-ordered stroke collection, bottom first.
type strokeList struct{ items []*domain.StrokePath }

func (l *strokeList) indexOf(s *domain.StrokePath) int {
	return slices.IndexFunc(l.items, func(x *domain.StrokePath) bool { return x == s })
}

func (l *strokeList) insertAt(i int, s *domain.StrokePath) {
	i = max(0, min(i, len(l.items)))
	l.items = slices.Insert(l.items, i, s)
}

func (l *strokeList) removeAt(i int) { l.items = slices.Delete(l.items, i, i+1) }

// insertOp appends a stroke on top.
type insertOp struct {
	list   *strokeList
	stroke *domain.StrokePath
	index  int
}

func (o *insertOp) Do() bool {
	if o.stroke == nil {
		return false
	}
	o.index = len(o.list.items)
	o.list.insertAt(o.index, o.stroke)
	return true
}

func (o *insertOp) Undo() {
	if i := o.list.indexOf(o.stroke); i >= 0 {
		o.list.removeAt(i)
	}
}

func (o *insertOp) Redo() { o.list.insertAt(o.index, o.stroke) }

// removeOp removes one or more strokes and restores them at their original
// z-positions on undo.
type removeOp struct {
	list    *strokeList
	targets []*domain.StrokePath
	removed []removedStroke // ascending index order
}

type removedStroke struct {
	stroke *domain.StrokePath
	index  int
}

func (o *removeOp) Do() bool {
	for _, s := range o.targets {
		if i := o.list.indexOf(s); i >= 0 {
			o.removed = append(o.removed, removedStroke{stroke: s, index: i})
		}
	}
	slices.SortFunc(o.removed, func(a, b removedStroke) int { return a.index - b.index })
	o.removed = slices.CompactFunc(o.removed, func(a, b removedStroke) bool { return a.index == b.index })
	o.apply()
	return len(o.removed) > 0
}

func (o *removeOp) apply() {
	for i := len(o.removed) - 1; i >= 0; i-- {
		if j := o.list.indexOf(o.removed[i].stroke); j >= 0 {
			o.list.removeAt(j)
		}
	}
}

func (o *removeOp) Undo() {
	for _, r := range o.removed {
		o.list.insertAt(r.index, r.stroke)
	}
}

func (o *removeOp) Redo() { o.apply() }

// translateOp moves a stroke set together with the selection bounds it was
// made from. The bounds pointer belongs to that selection and is never
// reused by a later one.
type translateOp struct {
	strokes []*domain.StrokePath
	offset  vector.Pt
	bounds  *vector.Rect
}

func (o *translateOp) Do() bool {
	if len(o.strokes) == 0 || o.offset.IsZero() {
		return false
	}
	o.apply(o.offset)
	return true
}

func (o *translateOp) Undo() { o.apply(o.offset.Neg()) }
func (o *translateOp) Redo() { o.apply(o.offset) }

func (o *translateOp) apply(d vector.Pt) {
	for _, s := range o.strokes {
		s.Translate(d)
	}
	if o.bounds != nil && !o.bounds.IsZero() {
		*o.bounds = o.bounds.Offset(d)
	}
}
