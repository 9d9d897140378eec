/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inkboard/internal/canvas"
	"inkboard/internal/gesture"
	applog "inkboard/internal/log"
	"inkboard/internal/vector"
)

// ErrExpectation is returned when an expect step does not match the canvas.
var ErrExpectation = errors.New("expectation failed")

// Runner feeds script steps through a gesture normalizer into a controller.
// Time only advances on wait steps, so replays are deterministic.
type Runner struct {
	c     *canvas.Controller
	n     *gesture.Normalizer
	sched *canvas.ManualScheduler
	log   *slog.Logger
}

// NewRunner builds a fresh controller for cfg.
func NewRunner(cfg canvas.Config) *Runner {
	l := applog.WithComponent("replay")
	sched := &canvas.ManualScheduler{}
	c := canvas.New(cfg, canvas.WithScheduler(sched), canvas.WithLogger(l))
	return &Runner{
		c:     c,
		n:     gesture.New(c, gesture.Config{TouchSlop: c.Config().TouchSlop}),
		sched: sched,
		log:   l,
	}
}

// Controller returns the driven controller.
func (r *Runner) Controller() *canvas.Controller { return r.c }

// Result summarizes a finished run.
type Result struct {
	Steps    int
	Strokes  int
	Stickies int
	Tapes    int
	Elapsed  time.Duration // simulated time from wait steps
}

// Run executes every step of s in order. It stops at the first failing
// step or when ctx is done.
func (r *Runner) Run(ctx context.Context, s *Script) (Result, error) {
	ctx = applog.ContextWith(ctx, slog.String("script", s.Name))
	var res Result
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sctx := applog.ContextWith(ctx, slog.Int("step", i), slog.String("action", st.kind()))
		r.log.DebugContext(sctx, "replay step")
		d, err := r.step(st)
		if err != nil {
			r.log.ErrorContext(sctx, "replay step failed", slog.Any("err", err))
			return res, fmt.Errorf("step %d (%s): %w", i, st.kind(), err)
		}
		res.Steps++
		res.Elapsed += d
	}
	res.Strokes = r.c.StrokeCount()
	res.Stickies = len(r.c.Stickies())
	res.Tapes = len(r.c.Tapes())
	r.log.InfoContext(ctx, "replay finished",
		slog.Int("steps", res.Steps), slog.Int("strokes", res.Strokes), slog.Int("tick", r.c.Tick()))
	return res, nil
}

func (r *Runner) step(st Step) (time.Duration, error) {
	switch {
	case st.Tool != "":
		m, err := canvas.ParseToolMode(st.Tool)
		if err != nil {
			return 0, err
		}
		r.c.SetToolMode(m)
	case st.Color != "":
		col, err := vector.ParseColor(st.Color)
		if err != nil {
			return 0, err
		}
		r.c.SetStrokeColor(col)
	case st.Width > 0:
		r.c.SetStrokeWidth(st.Width)
	case st.Drag != nil:
		r.drag(st.Drag)
	case st.Tap != nil:
		r.drag([]XY{*st.Tap})
	case st.Pinch != nil:
		r.pinch(*st.Pinch)
	case st.Pointers != nil:
		batch := make([]gesture.Pointer, len(st.Pointers))
		for i, p := range st.Pointers {
			batch[i] = gesture.Pointer{ID: gesture.PointerID(p.ID), Pos: p.At.Pt(), Pressed: !p.Up}
		}
		r.n.Process(batch)
	case st.Undo > 0:
		for range st.Undo {
			r.c.Undo()
		}
	case st.Redo > 0:
		for range st.Redo {
			r.c.Redo()
		}
	case st.Cancel:
		r.n.Cancel()
	case st.Wait != "":
		d, err := time.ParseDuration(st.Wait)
		if err != nil {
			return 0, err
		}
		r.sched.Advance(d)
		return d, nil
	case st.Text != nil:
		it, ok := r.c.StickyAt(st.Text.At.Pt())
		if !ok {
			return 0, fmt.Errorf("no sticky item at %v", st.Text.At)
		}
		if !r.c.SetStickyText(it.ID, st.Text.Value) {
			return 0, fmt.Errorf("sticky item %s (%s) holds no text", it.ID, it.Kind)
		}
	case st.DeleteSelection:
		r.c.DeleteSelection()
	case st.Clear:
		r.c.Clear()
	case st.Expect != nil:
		return 0, r.check(*st.Expect)
	default:
		return 0, errors.New("empty step")
	}
	return 0, nil
}

// drag presses pointer 1 through pts and lifts it at the last point.
func (r *Runner) drag(pts []XY) {
	for _, p := range pts {
		r.n.Process([]gesture.Pointer{{ID: 1, Pos: p.Pt(), Pressed: true}})
	}
	r.n.Process([]gesture.Pointer{{ID: 1, Pos: pts[len(pts)-1].Pt()}})
}

func (r *Runner) pinch(p Pinch) {
	press := func(a, b XY, down bool) []gesture.Pointer {
		return []gesture.Pointer{{ID: 1, Pos: a.Pt(), Pressed: down}, {ID: 2, Pos: b.Pt(), Pressed: down}}
	}
	r.n.Process(press(p.From[0], p.From[1], true))
	r.n.Process(press(p.To[0], p.To[1], true))
	r.n.Process(press(p.To[0], p.To[1], false))
}

func (r *Runner) check(e Expect) error {
	var errs []error
	want := func(name string, exp *int, got int) {
		if exp != nil && *exp != got {
			errs = append(errs, fmt.Errorf("%w: %s = %d, want %d", ErrExpectation, name, got, *exp))
		}
	}
	want("strokes", e.Strokes, r.c.StrokeCount())
	want("stickies", e.Stickies, len(r.c.Stickies()))
	want("tapes", e.Tapes, len(r.c.Tapes()))
	sel, _ := r.c.Selection()
	want("selected", e.Selected, len(sel))
	want("laser", e.Laser, len(r.c.LaserPaths()))
	if e.Mode != nil {
		m, err := canvas.ParseToolMode(*e.Mode)
		if err != nil {
			errs = append(errs, err)
		} else if m != r.c.Mode() {
			errs = append(errs, fmt.Errorf("%w: mode = %s, want %s", ErrExpectation, r.c.Mode(), m))
		}
	}
	if e.CanUndo != nil && *e.CanUndo != r.c.CanUndo() {
		errs = append(errs, fmt.Errorf("%w: can_undo = %t", ErrExpectation, r.c.CanUndo()))
	}
	if e.CanRedo != nil && *e.CanRedo != r.c.CanRedo() {
		errs = append(errs, fmt.Errorf("%w: can_redo = %t", ErrExpectation, r.c.CanRedo()))
	}
	return errors.Join(errs...)
}
