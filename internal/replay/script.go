/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package replay drives a canvas controller from a YAML gesture script.
//
// A script is a list of single-key steps:
//
//	version: 1
//	name: lasso demo
//	canvas:
//	  eraser_radius: 12
//	steps:
//	  - tool: pen
//	  - drag: [[10, 10], [50, 50], [90, 10]]
//	  - tool: lasso
//	  - drag: [[0, 0], [100, 0], [100, 100], [0, 100], [0, 0]]
//	  - expect: {selected: 1, mode: lasso_move}
//
// Scripts are validated against an embedded JSON schema before decoding.
package replay

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
	"inkboard/internal/canvas"
	"inkboard/internal/config"
	"inkboard/internal/vector"
)

//go:embed script.schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// ErrInvalidScript is returned for scripts that fail schema validation or decoding.
var ErrInvalidScript = errors.New("invalid replay script")

// XY is a point written as [x, y].
type XY [2]float32

func (p XY) Pt() vector.Pt { return vector.Pt{X: p[0], Y: p[1]} }

type Script struct {
	Version int       `yaml:"version"`
	Name    string    `yaml:"name"`
	Canvas  yaml.Node `yaml:"canvas"`
	Steps   []Step    `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Tool            string         `yaml:"tool,omitempty"`
	Color           string         `yaml:"color,omitempty"`
	Width           float32        `yaml:"width,omitempty"`
	Drag            []XY           `yaml:"drag,omitempty"`
	Tap             *XY            `yaml:"tap,omitempty"`
	Pinch           *Pinch         `yaml:"pinch,omitempty"`
	Pointers        []PointerState `yaml:"pointers,omitempty"`
	Undo            int            `yaml:"undo,omitempty"`
	Redo            int            `yaml:"redo,omitempty"`
	Cancel          bool           `yaml:"cancel,omitempty"`
	Wait            string         `yaml:"wait,omitempty"`
	Text            *TextEdit      `yaml:"text,omitempty"`
	DeleteSelection bool           `yaml:"delete_selection,omitempty"`
	Clear           bool           `yaml:"clear,omitempty"`
	Expect          *Expect        `yaml:"expect,omitempty"`
}

// Pinch presses two pointers at From, moves them to To and lifts both.
type Pinch struct {
	From [2]XY `yaml:"from"`
	To   [2]XY `yaml:"to"`
}

// PointerState is one raw pointer of a batch; Up lifts it.
type PointerState struct {
	ID int64 `yaml:"id"`
	At XY    `yaml:"at"`
	Up bool  `yaml:"up,omitempty"`
}

// TextEdit sets the text of the sticky item under At.
type TextEdit struct {
	At    XY     `yaml:"at"`
	Value string `yaml:"value"`
}

// Expect asserts controller state; nil fields are not checked.
type Expect struct {
	Strokes  *int    `yaml:"strokes,omitempty"`
	Stickies *int    `yaml:"stickies,omitempty"`
	Tapes    *int    `yaml:"tapes,omitempty"`
	Selected *int    `yaml:"selected,omitempty"`
	Laser    *int    `yaml:"laser,omitempty"`
	Mode     *string `yaml:"mode,omitempty"`
	CanUndo  *bool   `yaml:"can_undo,omitempty"`
	CanRedo  *bool   `yaml:"can_redo,omitempty"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse validates data against the script schema and decodes it.
func Parse(data []byte) (*Script, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	for i, st := range s.Steps {
		if st.Wait != "" {
			if _, err := time.ParseDuration(st.Wait); err != nil {
				return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidScript, i, err)
			}
		}
	}
	return &s, nil
}

// Validate checks data against the embedded schema. All violations are
// reported in one error wrapping ErrInvalidScript.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	res, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(js))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidScript, strings.Join(msgs, "; "))
}

// CanvasConfig overlays the script's canvas section on the defaults.
func (s *Script) CanvasConfig() (canvas.Config, error) {
	return s.CanvasConfigFrom(config.Defaults().Canvas)
}

// CanvasConfigFrom overlays the script's canvas section on base.
func (s *Script) CanvasConfigFrom(base config.CanvasConfig) (canvas.Config, error) {
	cc := base
	if s.Canvas.Kind != 0 {
		if err := s.Canvas.Decode(&cc); err != nil {
			return canvas.Config{}, fmt.Errorf("%w: canvas: %v", ErrInvalidScript, err)
		}
	}
	cfg, err := cc.ToCanvas()
	if err != nil {
		return canvas.Config{}, fmt.Errorf("%w: canvas: %v", ErrInvalidScript, err)
	}
	return cfg, nil
}

// kind names the action a step holds, for logs and errors.
func (st Step) kind() string {
	switch {
	case st.Tool != "":
		return "tool"
	case st.Color != "":
		return "color"
	case st.Width > 0:
		return "width"
	case st.Drag != nil:
		return "drag"
	case st.Tap != nil:
		return "tap"
	case st.Pinch != nil:
		return "pinch"
	case st.Pointers != nil:
		return "pointers"
	case st.Undo > 0:
		return "undo"
	case st.Redo > 0:
		return "redo"
	case st.Cancel:
		return "cancel"
	case st.Wait != "":
		return "wait"
	case st.Text != nil:
		return "text"
	case st.DeleteSelection:
		return "delete_selection"
	case st.Clear:
		return "clear"
	case st.Expect != nil:
		return "expect"
	}
	return "empty"
}
