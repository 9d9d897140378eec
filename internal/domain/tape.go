/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"github.com/google/uuid"

	"inkboard/internal/vector"
)

// TapeItem is a strip of tape laid from Start to End. Its long axis is the
// Start-End segment; Thickness is the paint width at placement.
type TapeItem struct {
	ID        string
	Start     vector.Pt
	End       vector.Pt
	Thickness float32
	Paint     vector.Paint
	// Path is the rotated rounded rectangle outline on the canvas.
	Path vector.Path
}

// NewTape lays a tape strip from start to end.
func NewTape(start, end vector.Pt, thickness float32, paint vector.Paint) TapeItem {
	t := TapeItem{ID: uuid.NewString(), Start: start, End: end, Thickness: thickness, Paint: paint.Copy()}
	t.Path = TapeOutline(start, end, thickness)
	return t
}

// TapeOutline builds the rounded rectangle of a tape strip: axis-aligned at
// start, then rotated about start by the Start-End angle.
func TapeOutline(start, end vector.Pt, thickness float32) vector.Path {
	length := start.Dist(end)
	local := vector.R(start.X, start.Y-thickness/2, length, thickness)
	p := vector.RoundedRect(local, thickness/4)
	p.Transform(vector.RotateAbout(start.Angle(end), start))
	return p
}

func (t TapeItem) Length() float32 { return t.Start.Dist(t.End) }

// Rotation is the strip angle in degrees, atan2 of the Start-End delta.
func (t TapeItem) Rotation() float32 { return vector.Degrees(t.Start.Angle(t.End)) }

func (t TapeItem) Bounds() vector.Rect { return t.Path.Bounds() }
