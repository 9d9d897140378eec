/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"testing"

	"inkboard/internal/vector"
)

func sampleStroke() *StrokePath {
	var r, h vector.Path
	r.MoveTo(0, 0)
	r.LineTo(0, 0)
	r.QuadTo(10, 0, 15, 5)
	h = r.Clone()
	h.Append(vector.Diamond(vector.Pt{X: 20, Y: 10}, 2))
	return NewStroke(r, h, vector.Pen(vector.Black, 4), []vector.Pt{{0, 0}, {10, 0}, {20, 10}})
}

func TestNewStrokeCopiesInputs(t *testing.T) {
	var r vector.Path
	r.MoveTo(1, 1)
	samples := []vector.Pt{{1, 1}}
	s := NewStroke(r, r, vector.Pen(vector.Black, 2), samples)
	r.LineTo(5, 5)
	samples[0] = vector.Pt{X: 9, Y: 9}
	if len(s.Rendered.Cmds) != 1 || len(s.HitArea.Cmds) != 1 {
		t.Fatalf("stroke paths alias caller path")
	}
	if s.Samples[0] != (vector.Pt{X: 1, Y: 1}) {
		t.Fatalf("samples alias caller slice")
	}
	if s.ID == "" {
		t.Fatalf("expected id")
	}
	if s.Transform != vector.Identity {
		t.Fatalf("expected identity transform, got %+v", s.Transform)
	}
}

func TestTranslateKeepsGeometrySynchronized(t *testing.T) {
	s := sampleStroke()
	rb, hb := s.Bounds(), s.HitBounds()
	d := vector.Pt{X: 30, Y: -7}
	s.Translate(d)
	if got := s.Bounds(); got != rb.Offset(d) {
		t.Fatalf("rendered bounds: got %+v want %+v", got, rb.Offset(d))
	}
	if got := s.HitBounds(); got != hb.Offset(d) {
		t.Fatalf("hit bounds: got %+v want %+v", got, hb.Offset(d))
	}
	if got := s.Transform.Translation(); got != d {
		t.Fatalf("transform translation: got %+v want %+v", got, d)
	}
	s.Translate(vector.Pt{X: -30, Y: 7})
	if s.Bounds() != rb || s.Transform != vector.Identity {
		t.Fatalf("inverse translation did not restore: %+v %+v", s.Bounds(), s.Transform)
	}
}

func TestReconstructReplaysTransform(t *testing.T) {
	s := sampleStroke()
	s.Translate(vector.Pt{X: 5, Y: 5})
	s.Translate(vector.Pt{X: 1, Y: 2})
	got := s.Reconstruct()
	want := []vector.Pt{{6, 7}, {16, 7}, {26, 17}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d: got %+v want %+v", i, got[i], want[i])
		}
	}
	if s.Samples[0] != (vector.Pt{}) {
		t.Fatalf("samples must stay in commit coordinates")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := sampleStroke()
	c := s.Clone()
	c.Translate(vector.Pt{X: 100})
	if s.Bounds() == c.Bounds() {
		t.Fatalf("clone shares geometry with original")
	}
	if c.ID != s.ID {
		t.Fatalf("clone should keep id")
	}
}
