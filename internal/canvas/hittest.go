/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

// Hit-testing and lasso selection over the stroke collection.
// Strokes are stored bottom to top, so scans run in reverse to find the
// topmost match first.

import (
	"inkboard/internal/domain"
	"inkboard/internal/vector"
)

// pointBoxRadius is the half-size of the box substituted for a degenerate
// (dot or straight axis-aligned line) bounding box.
const pointBoxRadius = 5

// testBox returns r, or a small box around it when r has no area.
func testBox(r vector.Rect) vector.Rect {
	if !r.IsDegenerate() {
		return r
	}
	return r.Union(vector.CenteredRect(r.Center(), pointBoxRadius))
}

// HitTest returns the index of the topmost stroke whose hit area overlaps probe.
func HitTest(probe vector.Path, strokes []*domain.StrokePath) (int, bool) {
	if probe.IsEmpty() {
		return -1, false
	}
	pb := probe.Bounds()
	for i := len(strokes) - 1; i >= 0; i-- {
		s := strokes[i]
		if !pb.Overlaps(testBox(s.HitBounds())) {
			continue
		}
		if probe.Intersects(&s.HitArea) {
			return i, true
		}
	}
	return -1, false
}

// LassoSelect collects every stroke whose rendered bounds lie inside the
// lasso bounds, or whose hit area overlaps the lasso. The result is in
// z-order. bounds is the union of the matched stroke boxes, zero when
// nothing matched.
func LassoSelect(lasso vector.Path, strokes []*domain.StrokePath) (matched []*domain.StrokePath, bounds vector.Rect) {
	if lasso.IsEmpty() {
		return nil, vector.Rect{}
	}
	lb := lasso.Bounds()
	for i := len(strokes) - 1; i >= 0; i-- {
		s := strokes[i]
		if !lb.ContainsRect(testBox(s.Bounds())) {
			if !lb.Overlaps(testBox(s.HitBounds())) || !lasso.Intersects(&s.HitArea) {
				continue
			}
		}
		matched = append(matched, s)
		bounds = bounds.Union(s.Bounds())
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return matched, bounds
}

// TapProbe is the disk substituted for a lasso that never moved.
func TapProbe(at vector.Pt, radius float32) vector.Path { return vector.Circle(at, radius) }
