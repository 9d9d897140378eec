/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "inkboard/internal/vector"

// Viewport maps screen coordinates to canvas coordinates:
// screen = canvas*Scale + Offset.
type Viewport struct {
	Offset vector.Pt
	Scale  float32
}

var identityViewport = Viewport{Scale: 1}

func (v Viewport) ToCanvas(p vector.Pt) vector.Pt {
	s := v.Scale
	if s == 0 {
		s = 1
	}
	return p.Sub(v.Offset).Scale(1 / s)
}

func (v Viewport) ToScreen(p vector.Pt) vector.Pt { return p.Scale(v.Scale).Add(v.Offset) }

// Matrix returns the canvas-to-screen transform.
func (v Viewport) Matrix() vector.Affine2D {
	return vector.TranslateBy(v.Offset).Mul(vector.Scale(v.Scale, v.Scale))
}

// pinch pans by the centroid movement and zooms about the new centroid, so
// the canvas point under the fingers stays under them.
func (v Viewport) pinch(prev, cur vector.Pt, zoom, minZoom, maxZoom float32) Viewport {
	anchor := v.ToCanvas(prev)
	if zoom <= 0 {
		zoom = 1
	}
	scale := vector.Clamp(v.Scale*zoom, minZoom, maxZoom)
	return Viewport{Offset: cur.Sub(anchor.Scale(scale)), Scale: scale}
}
