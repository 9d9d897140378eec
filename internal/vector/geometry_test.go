/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestRectContainsRectInclusive(t *testing.T) {
	outer := R(0, 0, 100, 100)
	if !outer.ContainsRect(R(0, 0, 100, 100)) {
		t.Fatalf("identical rect should be contained (inclusive edges)")
	}
	if !outer.ContainsRect(R(10, 10, 10, 10)) {
		t.Fatalf("inner rect should be contained")
	}
	if outer.ContainsRect(R(90, 90, 20, 5)) {
		t.Fatalf("rect crossing the right edge must not be contained")
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	if !a.Overlaps(R(10, 10, 5, 5)) {
		t.Fatalf("touching corners should overlap")
	}
	if a.Overlaps(R(11, 0, 5, 5)) {
		t.Fatalf("disjoint rects should not overlap")
	}
	// a degenerate point rect still overlaps when inside
	if !a.Overlaps(R(5, 5, 0, 0)) {
		t.Fatalf("point rect inside should overlap")
	}
}

func TestRectUnionWithZero(t *testing.T) {
	solid := R(10, 10, 10, 10)
	if got := (Rect{}).Union(solid); got != solid {
		t.Fatalf("zero.Union(r) = %+v, want %+v", got, solid)
	}
	if got := solid.Union(Rect{}); got != solid {
		t.Fatalf("r.Union(zero) = %+v, want %+v", got, solid)
	}
	got := solid.Union(R(30, 0, 5, 5))
	if got != R(10, 0, 25, 20) {
		t.Fatalf("unexpected union: %+v", got)
	}
}

func TestRectPadKeepsZero(t *testing.T) {
	if got := (Rect{}).Pad(20); !got.IsZero() {
		t.Fatalf("padding the zero rect must keep it zero, got %+v", got)
	}
	if got := R(10, 10, 10, 10).Pad(20); got != R(-10, -10, 50, 50) {
		t.Fatalf("unexpected padded rect: %+v", got)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
}

func TestAffineInvert(t *testing.T) {
	m := Translate(7, -3).Mul(Scale(2, 2))
	q := m.Invert().Apply(m.Apply(Pt{4, 9}))
	if FloatRound(q.X, 3) != 4 || FloatRound(q.Y, 3) != 9 {
		t.Fatalf("inverse did not round-trip: %+v", q)
	}
	if (Affine2D{}).Invert() != Identity {
		t.Fatalf("singular matrix should invert to identity")
	}
}

func TestTranslationComposes(t *testing.T) {
	m := TranslateBy(Pt{5, 5}).Mul(Identity)
	m = TranslateBy(Pt{-2, 3}).Mul(m)
	if got := m.Translation(); got != (Pt{3, 8}) {
		t.Fatalf("unexpected composed translation: %+v", got)
	}
}

func TestPointHelpers(t *testing.T) {
	a, b := Pt{0, 0}, Pt{3, 4}
	if a.Dist(b) != 5 {
		t.Fatalf("distance = %v, want 5", a.Dist(b))
	}
	if a.Mid(b) != (Pt{1.5, 2}) {
		t.Fatalf("midpoint = %+v", a.Mid(b))
	}
	if got := Degrees(a.Angle(Pt{0, 10})); FloatRound(got, 3) != 90 {
		t.Fatalf("angle = %v, want 90", got)
	}
}
