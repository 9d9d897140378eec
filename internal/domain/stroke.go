/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the persistent record of a freehand stroke.

import (
	"github.com/google/uuid"

	"inkboard/internal/vector"
)

// StrokePath is a committed freehand stroke.
//
// Rendered and HitArea are kept transform-synchronized: every translation is
// applied to Transform, Rendered and HitArea together through Translate.
// Stroke content is fixed at commit time; afterwards only the transform changes.
type StrokePath struct {
	ID       string
	Rendered vector.Path // smoothed curve that is drawn
	HitArea  vector.Path // hit-test geometry, may carry extra loops around vertices
	Paint    vector.Paint
	// Transform accumulates all translations since commit.
	Transform vector.Affine2D
	// Samples are the raw input points in commit coordinates, before Transform.
	Samples []vector.Pt
}

// NewStroke builds a stroke with a fresh ID. The paths and samples are copied.
func NewStroke(rendered, hitArea vector.Path, paint vector.Paint, samples []vector.Pt) *StrokePath {
	return &StrokePath{
		ID:        uuid.NewString(),
		Rendered:  rendered.Clone(),
		HitArea:   hitArea.Clone(),
		Paint:     paint.Copy(),
		Transform: vector.Identity,
		Samples:   append([]vector.Pt(nil), samples...),
	}
}

// Translate moves the stroke by d. Transform, Rendered and HitArea move together.
func (s *StrokePath) Translate(d vector.Pt) {
	if d.IsZero() {
		return
	}
	s.Transform = vector.TranslateBy(d).Mul(s.Transform)
	s.Rendered.Offset(d)
	s.HitArea.Offset(d)
}

// Bounds returns the bounding box of the rendered curve.
func (s *StrokePath) Bounds() vector.Rect { return s.Rendered.Bounds() }

// HitBounds returns the bounding box of the hit-test geometry.
func (s *StrokePath) HitBounds() vector.Rect { return s.HitArea.Bounds() }

// Reconstruct replays Transform over the original samples.
func (s *StrokePath) Reconstruct() []vector.Pt {
	out := make([]vector.Pt, len(s.Samples))
	for i, p := range s.Samples {
		out[i] = s.Transform.Apply(p)
	}
	return out
}

// Clone returns a deep copy sharing the ID.
func (s *StrokePath) Clone() *StrokePath {
	c := *s
	c.Rendered = s.Rendered.Clone()
	c.HitArea = s.HitArea.Clone()
	c.Paint = s.Paint.Copy()
	c.Samples = append([]vector.Pt(nil), s.Samples...)
	return &c
}
