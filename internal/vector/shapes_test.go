/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func near(a, b float32) bool {
	d := a - b
	return d < 0.01 && d > -0.01
}

func TestRoundedRect_Bounds(t *testing.T) {
	p := RoundedRect(R(1, 2, 100, 50), 10)
	b := p.Bounds()
	if !near(b.X, 1) || !near(b.Y, 2) || !near(b.W, 100) || !near(b.H, 50) {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestCircle_BoundsAndContains(t *testing.T) {
	c := Circle(Pt{50, 50}, 20)
	b := c.Bounds()
	if !near(b.X, 30) || !near(b.Y, 30) || !near(b.W, 40) || !near(b.H, 40) {
		t.Fatalf("unexpected circle bounds: %+v", b)
	}
	if !c.Contains(Pt{50, 50}) {
		t.Fatalf("center should be inside")
	}
	if c.Contains(Pt{31, 31}) {
		t.Fatalf("bbox corner should be outside the circle")
	}
}

func TestDiamond_IsClosedRegion(t *testing.T) {
	d := Diamond(Pt{0, 0}, 2)
	subs := d.Flatten(FlattenTolerance)
	if len(subs) != 1 || !subs[0].Closed {
		t.Fatalf("expected one closed subpath, got %+v", subs)
	}
	if !d.Contains(Pt{0.5, 0.5}) {
		t.Fatalf("expected point inside diamond")
	}
}

func TestGGRoundTrip(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.QuadTo(5, 5, 10, 0)
	p.CubicTo(12, 1, 14, 2, 16, 0)
	p.Close()
	back := FromGG(ToGG(p))
	if len(back.Cmds) != len(p.Cmds) {
		t.Fatalf("round trip changed command count: %d vs %d", len(back.Cmds), len(p.Cmds))
	}
	for i := range p.Cmds {
		if back.Cmds[i] != p.Cmds[i] {
			t.Fatalf("cmd %d differs: %+v vs %+v", i, back.Cmds[i], p.Cmds[i])
		}
	}
}
