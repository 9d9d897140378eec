/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Sticky items are placed, movable, scalable canvas objects. The five kinds
// share one data shape; the kind-specific payload is a closed set of
// Property variants.

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkboard/internal/vector"
)

type StickyKind uint8

const (
	KindPostIt StickyKind = iota
	KindTextBox
	KindPainterImage
	KindVectorImage
	KindBitmapImage
)

var stickyKindNames = [...]string{"postit", "textbox", "painter_image", "vector_image", "bitmap_image"}

func (k StickyKind) String() string {
	if int(k) < len(stickyKindNames) {
		return stickyKindNames[k]
	}
	return fmt.Sprintf("StickyKind(%d)", uint8(k))
}

// TextBearing reports whether items of this kind hold editable text and can take focus.
func (k StickyKind) TextBearing() bool { return k == KindPostIt || k == KindTextBox }

// ParseStickyKind maps a name like "postit" or "textbox" to a kind.
func ParseStickyKind(s string) (StickyKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range stickyKindNames {
		if n == s {
			return StickyKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sticky kind %q", s)
}

// TextStyle is the minimal text appearance carried by text-bearing items.
type TextStyle struct {
	FontSize float32
	Color    vector.Color
	Bold     bool
	Italic   bool
}

// ContentFit says how an image is fitted into its box.
type ContentFit uint8

const (
	FitContain ContentFit = iota
	FitCover
	FitFill
	FitWidth
	FitHeight
	FitNone
)

var contentFitNames = [...]string{"contain", "cover", "fill", "fit_width", "fit_height", "none"}

func (f ContentFit) String() string {
	if int(f) < len(contentFitNames) {
		return contentFitNames[f]
	}
	return fmt.Sprintf("ContentFit(%d)", uint8(f))
}

// ParseContentFit maps a name to a ContentFit; empty input yields FitContain.
func ParseContentFit(s string) (ContentFit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FitContain, nil
	}
	for i, n := range contentFitNames {
		if n == s {
			return ContentFit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown content fit %q", s)
}

// Property is the kind-specific payload of a StickyItem.
// The set of implementations is closed to this package.
type Property interface {
	Kind() StickyKind
	BoxSize() vector.Size
	isProperty()
}

type PostItProperty struct {
	Size       vector.Size
	Background vector.Color
	Text       string
	TextStyle  TextStyle
	Padding    float32
}

type TextBoxProperty struct {
	Size      vector.Size
	Border    vector.Color
	Text      string
	TextStyle TextStyle
	Padding   float32
}

type PainterImageProperty struct {
	Size    vector.Size
	Strokes []vector.Path // vector drawing made inside the item
	Tint    vector.Color
}

type VectorImageProperty struct {
	Size     vector.Size
	ImageRef string
	Tint     vector.Color
}

type BitmapImageProperty struct {
	Size     vector.Size
	ImageRef string
	Fit      ContentFit
}

func (PostItProperty) Kind() StickyKind       { return KindPostIt }
func (TextBoxProperty) Kind() StickyKind      { return KindTextBox }
func (PainterImageProperty) Kind() StickyKind { return KindPainterImage }
func (VectorImageProperty) Kind() StickyKind  { return KindVectorImage }
func (BitmapImageProperty) Kind() StickyKind  { return KindBitmapImage }

func (p PostItProperty) BoxSize() vector.Size       { return p.Size }
func (p TextBoxProperty) BoxSize() vector.Size      { return p.Size }
func (p PainterImageProperty) BoxSize() vector.Size { return p.Size }
func (p VectorImageProperty) BoxSize() vector.Size  { return p.Size }
func (p BitmapImageProperty) BoxSize() vector.Size  { return p.Size }

func (PostItProperty) isProperty()       {}
func (TextBoxProperty) isProperty()      {}
func (PainterImageProperty) isProperty() {}
func (VectorImageProperty) isProperty()  {}
func (BitmapImageProperty) isProperty()  {}

var defaultText = TextStyle{FontSize: 16, Color: vector.Black}

// DefaultProperty returns the payload a freshly placed item of kind k starts with.
func DefaultProperty(k StickyKind) Property {
	switch k {
	case KindTextBox:
		return TextBoxProperty{Size: vector.Size{W: 240, H: 80}, Border: vector.Gray, TextStyle: defaultText, Padding: 8}
	case KindPainterImage:
		return PainterImageProperty{Size: vector.Size{W: 200, H: 200}, Tint: vector.Transparent}
	case KindVectorImage:
		return VectorImageProperty{Size: vector.Size{W: 160, H: 160}, Tint: vector.Transparent}
	case KindBitmapImage:
		return BitmapImageProperty{Size: vector.Size{W: 160, H: 160}, Fit: FitContain}
	default:
		return PostItProperty{Size: vector.Size{W: 200, H: 200}, Background: vector.Color{R: 255, G: 235, B: 130, A: 255}, TextStyle: defaultText, Padding: 12}
	}
}

// StickyItem is a placed canvas object. It is a value type: the With*
// helpers return modified copies and never touch the receiver.
type StickyItem struct {
	ID      string
	Kind    StickyKind
	Focused bool
	// FirstPoint is where the item was placed.
	FirstPoint vector.Pt
	// Translate is the cumulative pan offset from FirstPoint.
	Translate vector.Pt
	// ScaleFactor is at least 1; ScaleOffset keeps the pinch pivot in place.
	ScaleFactor float32
	ScaleOffset vector.Pt
	Property    Property
}

// NewSticky places an item of the property's kind at p. A nil property gets
// the kind default.
func NewSticky(k StickyKind, at vector.Pt, prop Property) (StickyItem, error) {
	if prop == nil {
		prop = DefaultProperty(k)
	}
	if prop.Kind() != k {
		return StickyItem{}, fmt.Errorf("property of kind %s does not match item kind %s", prop.Kind(), k)
	}
	return StickyItem{ID: uuid.NewString(), Kind: k, FirstPoint: at, ScaleFactor: 1, Property: prop}, nil
}

// Origin is the top-left corner of the item on the canvas.
func (s StickyItem) Origin() vector.Pt { return s.FirstPoint.Add(s.Translate).Add(s.ScaleOffset) }

// Bounds is the item's box on the canvas after translation and scaling.
func (s StickyItem) Bounds() vector.Rect {
	sz := s.Property.BoxSize()
	f := s.ScaleFactor
	if f <= 0 {
		f = 1
	}
	o := s.Origin()
	return vector.R(o.X, o.Y, sz.W*f, sz.H*f)
}

func (s StickyItem) WithFocus(focused bool) StickyItem {
	s.Focused = focused && s.Kind.TextBearing()
	return s
}

func (s StickyItem) Moved(d vector.Pt) StickyItem {
	s.Translate = s.Translate.Add(d)
	return s
}

func (s StickyItem) WithScale(factor float32, offset vector.Pt) StickyItem {
	s.ScaleFactor = factor
	s.ScaleOffset = offset
	return s
}

// WithProperty swaps the payload; a payload of another kind is ignored.
func (s StickyItem) WithProperty(p Property) StickyItem {
	if p != nil && p.Kind() == s.Kind {
		s.Property = p
	}
	return s
}

// Text returns the item's text for text-bearing kinds.
func (s StickyItem) Text() string {
	switch p := s.Property.(type) {
	case PostItProperty:
		return p.Text
	case TextBoxProperty:
		return p.Text
	}
	return ""
}

// WithText replaces the text of a text-bearing item; other kinds are returned unchanged.
func (s StickyItem) WithText(text string) StickyItem {
	switch p := s.Property.(type) {
	case PostItProperty:
		p.Text = text
		s.Property = p
	case TextBoxProperty:
		p.Text = text
		s.Property = p
	}
	return s
}
