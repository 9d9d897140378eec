/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture turns raw multi-pointer input into start/update/end/cancel
// events with single-touch versus multi-touch disambiguation.
package gesture

import (
	"log/slog"
	"math"

	applog "inkboard/internal/log"
	"inkboard/internal/vector"
)

// PointerID identifies one finger, pen or mouse button across events.
type PointerID int64

// Pointer is the state of one pointer in an input batch. A pointer that is
// no longer pressed is lifted.
type Pointer struct {
	ID      PointerID
	Pos     vector.Pt
	Pressed bool
}

// Update is one normalized gesture step.
//
// For single-touch updates Previous and Current are the pointer positions,
// Pan is their difference and Zoom is 1. For multi-touch updates Previous and
// Current are pointer centroids and Zoom is the ratio of the average pointer
// spread between the two batches.
type Update struct {
	Previous   vector.Pt
	Current    vector.Pt
	Zoom       float32
	Pan        vector.Pt
	Centroid   vector.Pt
	MultiTouch bool
}

// Handler consumes normalized gestures.
type Handler interface {
	OnGestureStart(p vector.Pt)
	OnGestureUpdate(u Update)
	OnGestureEnd(multiTouch bool)
	OnGestureCancel()
}

// Config tunes the normalizer.
type Config struct {
	// TouchSlop is the distance a single pointer must travel from its start
	// before the first update is emitted. Zero emits every movement.
	TouchSlop float32
}

// Normalizer tracks the pointers of one surface. It is not safe for
// concurrent use; feed it from the input thread.
type Normalizer struct {
	cfg      Config
	h        Handler
	log      *slog.Logger
	pointers map[PointerID]vector.Pt
	order    []PointerID

	active     bool
	multi      bool
	slopPassed bool
	start      vector.Pt
	last       vector.Pt
	lastCount  int
	lastSpread float32
}

// New returns a normalizer delivering events to h.
func New(h Handler, cfg Config) *Normalizer {
	if cfg.TouchSlop < 0 {
		cfg.TouchSlop = 0
	}
	return &Normalizer{
		cfg:      cfg,
		h:        h,
		log:      applog.WithComponent("gesture"),
		pointers: make(map[PointerID]vector.Pt),
	}
}

// Active reports whether a gesture is in progress.
func (n *Normalizer) Active() bool { return n.active }

// MultiTouch reports whether the current gesture has seen two or more pointers.
// It stays true until the gesture ends or is cancelled.
func (n *Normalizer) MultiTouch() bool { return n.multi }

// Process applies one batch of pointer changes and emits at most one event.
func (n *Normalizer) Process(batch []Pointer) {
	for _, p := range batch {
		if p.Pressed {
			if _, ok := n.pointers[p.ID]; !ok {
				n.order = append(n.order, p.ID)
			}
			n.pointers[p.ID] = p.Pos
			continue
		}
		if _, ok := n.pointers[p.ID]; ok {
			delete(n.pointers, p.ID)
			n.order = removeID(n.order, p.ID)
		}
	}

	count := len(n.pointers)
	if !n.active {
		if count == 0 {
			return
		}
		n.begin(count)
		return
	}
	if count == 0 {
		multi := n.multi
		n.reset()
		n.h.OnGestureEnd(multi)
		return
	}
	if count > 1 && !n.multi {
		n.log.Debug("multi-touch detected", "pointers", count)
		n.multi = true
		n.lastCount = 0
	}
	if n.multi {
		n.updateMulti(count)
		return
	}
	n.updateSingle()
}

// Cancel aborts the current gesture and forgets all pointers.
func (n *Normalizer) Cancel() {
	if !n.active {
		n.reset()
		return
	}
	n.reset()
	n.h.OnGestureCancel()
}

func (n *Normalizer) begin(count int) {
	n.active = true
	n.start = n.pointers[n.order[0]]
	n.last = n.start
	n.multi = count > 1
	if n.multi {
		n.last, n.lastSpread = n.centroid()
		n.lastCount = count
	}
	n.h.OnGestureStart(n.start)
}

func (n *Normalizer) updateSingle() {
	cur := n.pointers[n.order[0]]
	if cur == n.last {
		return
	}
	if !n.slopPassed {
		if n.start.Dist(cur) < n.cfg.TouchSlop {
			return
		}
		n.slopPassed = true
	}
	u := Update{Previous: n.last, Current: cur, Zoom: 1, Pan: cur.Sub(n.last), Centroid: cur}
	n.last = cur
	n.h.OnGestureUpdate(u)
}

func (n *Normalizer) updateMulti(count int) {
	c, spread := n.centroid()
	if count != n.lastCount {
		// pointer set changed: rebaseline so the centroid does not jump
		n.last, n.lastSpread, n.lastCount = c, spread, count
		return
	}
	zoom := float32(1)
	if n.lastSpread > 0 && spread > 0 {
		zoom = spread / n.lastSpread
	}
	if c == n.last && zoom == 1 {
		return
	}
	u := Update{Previous: n.last, Current: c, Zoom: zoom, Pan: c.Sub(n.last), Centroid: c, MultiTouch: true}
	n.last, n.lastSpread = c, spread
	n.h.OnGestureUpdate(u)
}

// centroid returns the mean pointer position and the mean distance to it.
func (n *Normalizer) centroid() (vector.Pt, float32) {
	var sx, sy float64
	for _, id := range n.order {
		p := n.pointers[id]
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	k := float64(len(n.order))
	c := vector.Pt{X: float32(sx / k), Y: float32(sy / k)}
	if len(n.order) < 2 {
		return c, 0
	}
	var d float64
	for _, id := range n.order {
		p := n.pointers[id]
		d += math.Hypot(float64(p.X-c.X), float64(p.Y-c.Y))
	}
	return c, float32(d / k)
}

func (n *Normalizer) reset() {
	n.active = false
	n.multi = false
	n.slopPassed = false
	n.lastCount = 0
	n.lastSpread = 0
	clear(n.pointers)
	n.order = n.order[:0]
}

func removeID(ids []PointerID, id PointerID) []PointerID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
