/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"fmt"
	"testing"

	"inkboard/internal/gesture"
	"inkboard/internal/vector"
)

func pt(x, y float32) vector.Pt { return vector.Pt{X: x, Y: y} }

// polyline builds an open path through pts.
func polyline(pts ...vector.Pt) vector.Path {
	var p vector.Path
	for i, q := range pts {
		if i == 0 {
			p.MoveToPt(q)
			continue
		}
		p.LineToPt(q)
	}
	return p
}

// closedRect builds a closed rectangle path.
func closedRect(x0, y0, x1, y1 float32) vector.Path {
	var p vector.Path
	p.AddRect(vector.RectFromPoints(pt(x0, y0), pt(x1, y1)))
	return p
}

func addLine(c *Controller, pts ...vector.Pt) string {
	p := polyline(pts...)
	return c.AddStroke(p, p, pts).ID
}

type harness struct {
	c     *Controller
	n     *gesture.Normalizer
	sched *ManualScheduler
}

func newHarness(t *testing.T, mutate ...func(*Config)) *harness {
	t.Helper()
	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	sched := &ManualScheduler{}
	c := New(cfg, WithScheduler(sched))
	return &harness{c: c, n: gesture.New(c, gesture.Config{TouchSlop: cfg.TouchSlop}), sched: sched}
}

func (h *harness) drag(pts ...vector.Pt) {
	for _, p := range pts {
		h.n.Process([]gesture.Pointer{{ID: 1, Pos: p, Pressed: true}})
	}
	last := pts[len(pts)-1]
	h.n.Process([]gesture.Pointer{{ID: 1, Pos: last}})
}

func (h *harness) tap(p vector.Pt) { h.drag(p) }

// pinch presses two pointers at a0/b0, moves them to a1/b1 and lifts both.
func (h *harness) pinch(a0, b0, a1, b1 vector.Pt) {
	h.n.Process([]gesture.Pointer{{ID: 1, Pos: a0, Pressed: true}, {ID: 2, Pos: b0, Pressed: true}})
	h.n.Process([]gesture.Pointer{{ID: 1, Pos: a1, Pressed: true}, {ID: 2, Pos: b1, Pressed: true}})
	h.n.Process([]gesture.Pointer{{ID: 1, Pos: a1}, {ID: 2, Pos: b1}})
}

// state renders the stroke collection for equality checks.
func state(c *Controller) []string {
	var out []string
	for _, s := range c.Strokes() {
		out = append(out, fmt.Sprintf("%s %+v %+v %+v", s.ID, s.Transform, s.Bounds(), s.HitBounds()))
	}
	return out
}

func equalState(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ids(c *Controller) []string {
	var out []string
	for _, s := range c.Strokes() {
		out = append(out, s.ID)
	}
	return out
}

func press(id gesture.PointerID, p vector.Pt) []gesture.Pointer {
	return []gesture.Pointer{{ID: id, Pos: p, Pressed: true}}
}

func release(id gesture.PointerID, p vector.Pt) []gesture.Pointer {
	return []gesture.Pointer{{ID: id, Pos: p}}
}
