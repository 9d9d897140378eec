/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func line(a, b Pt) Path {
	var p Path
	p.MoveToPt(a)
	p.LineToPt(b)
	return p
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name           string
		p1, p2, q1, q2 Pt
		want           bool
	}{
		{"cross", Pt{0, 0}, Pt{10, 10}, Pt{0, 10}, Pt{10, 0}, true},
		{"parallel", Pt{0, 0}, Pt{10, 0}, Pt{0, 1}, Pt{10, 1}, false},
		{"touching end", Pt{0, 0}, Pt{5, 5}, Pt{5, 5}, Pt{9, 0}, true},
		{"collinear overlap", Pt{0, 0}, Pt{10, 0}, Pt{5, 0}, Pt{15, 0}, true},
		{"collinear apart", Pt{0, 0}, Pt{4, 0}, Pt{5, 0}, Pt{15, 0}, false},
		{"point on segment", Pt{5, 5}, Pt{5, 5}, Pt{0, 0}, Pt{10, 10}, true},
	}
	for _, tc := range cases {
		if got := SegmentsIntersect(tc.p1, tc.p2, tc.q1, tc.q2); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestIntersects_LineThroughCircle(t *testing.T) {
	l := line(Pt{-100, 5}, Pt{100, 5})
	c := Circle(Pt{0, 0}, 20)
	if !l.Intersects(&c) || !c.Intersects(&l) {
		t.Fatalf("line crossing the circle should intersect both ways")
	}
	far := line(Pt{-100, 50}, Pt{100, 50})
	if far.Intersects(&c) {
		t.Fatalf("line outside the circle should not intersect")
	}
}

func TestIntersects_ContainedShortStroke(t *testing.T) {
	// a stroke entirely inside a closed region has no crossing edges
	s := line(Pt{-1, -1}, Pt{1, 1})
	c := Circle(Pt{0, 0}, 20)
	if !c.Intersects(&s) {
		t.Fatalf("stroke inside circle should intersect the region")
	}
}

func TestIntersects_OpenPathsHaveNoInterior(t *testing.T) {
	// an open U shape does not contain the point in its opening
	var u Path
	u.MoveTo(0, 0)
	u.LineTo(0, 10)
	u.LineTo(10, 10)
	u.LineTo(10, 0)
	dot := line(Pt{5, 5}, Pt{5, 5})
	if u.Intersects(&dot) {
		t.Fatalf("open polyline must not act as a region")
	}
	u.Close()
	if !u.Intersects(&dot) {
		t.Fatalf("closed polyline should contain the dot")
	}
}

func TestIntersects_EmptyPaths(t *testing.T) {
	var empty Path
	c := Circle(Pt{0, 0}, 5)
	if empty.Intersects(&c) || c.Intersects(&empty) {
		t.Fatalf("empty path never intersects")
	}
}

func TestFlatten_SplitsSubpaths(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.Append(Diamond(Pt{20, 20}, 1))
	p.MoveTo(30, 30)
	p.QuadTo(40, 40, 50, 30)
	subs := p.Flatten(0.5)
	if len(subs) != 3 {
		t.Fatalf("expected 3 subpaths, got %d", len(subs))
	}
	if subs[0].Closed || !subs[1].Closed || subs[2].Closed {
		t.Fatalf("unexpected closed flags: %v %v %v", subs[0].Closed, subs[1].Closed, subs[2].Closed)
	}
	if n := len(subs[2].Pts); n < 3 {
		t.Fatalf("curve should flatten to several points, got %d", n)
	}
}
