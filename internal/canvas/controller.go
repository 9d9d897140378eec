/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas is the editing core of a stroke and sticky-note canvas: it
// holds the drawn objects, the selection, the active tool and the undo
// history, and turns normalized gestures into mutations.
//
// A Controller is single-threaded. All calls, including gesture callbacks
// and scheduled laser fades, must come from the same goroutine. By default
// the laser fade waits in a ClockScheduler and runs when the host calls
// RunDueTimers; WithDispatcher hands it to the host's loop instead.
package canvas

import (
	"log/slog"
	"math"
	"slices"

	"inkboard/internal/domain"
	"inkboard/internal/gesture"
	applog "inkboard/internal/log"
	"inkboard/internal/undo"
	"inkboard/internal/vector"
)

// selection is the lasso result. bounds is freshly allocated per selection
// so operations holding it never alias a later selection.
type selection struct {
	strokes []*domain.StrokePath
	bounds  *vector.Rect
	preview vector.Pt // live drag offset not yet committed
}

func (s *selection) empty() bool { return len(s.strokes) == 0 }

// Controller is the single source of truth for one canvas.
type Controller struct {
	cfg     Config
	log     *slog.Logger
	history *undo.Manager

	strokes  strokeList
	stickies []domain.StickyItem
	tapes    []domain.TapeItem
	tapeSel  map[string]bool
	sel      selection

	laserPaths  []vector.Path
	laserActive bool
	sched       Scheduler
	fade        Stopper
	fadeGen     uint64

	mode   ToolMode
	tools  map[ToolMode]Tool
	paints map[ToolMode]vector.Paint
	view   Viewport

	tick int
	subs []*subscriber
}

type subscriber struct{ fn func(int) }

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger replaces the default "canvas" component logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithScheduler replaces the timer used for the laser fade.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithDispatcher fires laser fades from runtime timers through post, which
// must run the func on the controller's goroutine (a UI loop's queue).
func WithDispatcher(post func(func())) Option {
	return func(c *Controller) {
		if post != nil {
			c.sched = dispatchScheduler{post: post}
		}
	}
}

// New builds a controller in pen mode.
func New(cfg Config, opts ...Option) *Controller {
	cfg = cfg.normalize()
	c := &Controller{
		cfg:     cfg,
		log:     applog.WithComponent("canvas"),
		history: undo.NewManager(undo.Config{MaxDepth: cfg.UndoDepth}),
		tapeSel: make(map[string]bool),
		sched:   &ClockScheduler{},
		view:    identityViewport,
		sel:     selection{bounds: new(vector.Rect)},
	}
	for _, o := range opts {
		o(c)
	}
	c.paints = map[ToolMode]vector.Paint{
		ModePen:         cfg.PenPaint.Copy(),
		ModeEraser:      cfg.PenPaint.Copy(),
		ModeLassoSelect: cfg.LassoPaint.Copy(),
		ModeLassoMove:   cfg.LassoPaint.Copy(),
		ModeLaser:       cfg.LaserPaint.Copy(),
		ModeTape:        cfg.TapePaint.Copy(),
	}
	c.tools = map[ToolMode]Tool{
		ModePen:         &penTool{c: c},
		ModeEraser:      &eraserTool{c: c},
		ModeLassoSelect: &lassoSelectTool{c: c},
		ModeLassoMove:   &lassoMoveTool{c: c},
		ModeLaser:       &laserTool{c: c},
		ModeTape:        &tapeTool{c: c},
	}
	for k := domain.KindPostIt; k <= domain.KindBitmapImage; k++ {
		c.tools[StickyMode(k)] = &stickyTool{c: c, kind: k}
	}
	c.mode = ModePen
	return c
}

func (c *Controller) Config() Config { return c.cfg }

// Mode returns the active tool mode.
func (c *Controller) Mode() ToolMode { return c.mode }

func (c *Controller) tool() Tool { return c.tools[c.mode] }

// SetToolMode switches tools. The outgoing and incoming tools are reset and
// the selection is cleared. Lasso-move cannot be entered without a
// selection, so asking for it lands in lasso-select.
func (c *Controller) SetToolMode(m ToolMode) {
	if _, ok := c.tools[m]; !ok {
		c.log.Warn("unknown tool mode", "mode", m)
		return
	}
	c.clearSelection()
	if m == ModeLassoMove {
		m = ModeLassoSelect
	}
	c.switchTool(m)
	c.refresh()
}

func (c *Controller) switchTool(m ToolMode) {
	c.tool().Reset()
	if c.mode != m {
		c.log.Debug("tool switched", "from", c.mode, "to", m)
	}
	c.mode = m
	c.tool().Reset()
}

// ActivePaint is the paint of the current tool.
func (c *Controller) ActivePaint() vector.Paint { return c.Paint(c.mode) }

// Paint returns the paint used by mode m. Sticky modes have none.
func (c *Controller) Paint(m ToolMode) vector.Paint { return c.paints[m].Copy() }

// SetPaint replaces the paint of mode m. Lasso-select and lasso-move share one paint.
func (c *Controller) SetPaint(m ToolMode, p vector.Paint) {
	if _, ok := m.StickyKind(); ok {
		return
	}
	switch m {
	case ModeLassoSelect, ModeLassoMove:
		c.paints[ModeLassoSelect] = p.Copy()
		c.paints[ModeLassoMove] = p.Copy()
	default:
		c.paints[m] = p.Copy()
	}
	c.refresh()
}

// SetStrokeColor changes the color of the active tool's paint.
func (c *Controller) SetStrokeColor(col vector.Color) {
	c.SetPaint(c.mode, c.paints[c.mode].WithColor(col))
}

// SetStrokeWidth changes the width of the active tool's paint. Non-positive widths are ignored.
func (c *Controller) SetStrokeWidth(w float32) {
	if w <= 0 {
		return
	}
	c.SetPaint(c.mode, c.paints[c.mode].WithWidth(w))
}

// ---- strokes and history ----

// Strokes returns the live strokes bottom to top. The slice is a copy; the
// strokes are shared.
func (c *Controller) Strokes() []*domain.StrokePath {
	return append([]*domain.StrokePath(nil), c.strokes.items...)
}

func (c *Controller) StrokeCount() int { return len(c.strokes.items) }

// Stroke finds a live stroke by id.
func (c *Controller) Stroke(id string) (*domain.StrokePath, bool) {
	for _, s := range c.strokes.items {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func (c *Controller) execute(name string, op undo.Operation) bool {
	ok := c.history.Execute(op)
	u, r := c.history.Stats()
	applog.WithOperation(c.log, name).Debug("execute", "applied", ok, "undo_depth", u, "redo_depth", r)
	c.refresh()
	return ok
}

// AddStroke commits a stroke with the active paint as one undoable insert.
func (c *Controller) AddStroke(rendered, hitArea vector.Path, samples []vector.Pt) *domain.StrokePath {
	s := domain.NewStroke(rendered, hitArea, c.ActivePaint(), samples)
	c.execute("insert", &insertOp{list: &c.strokes, stroke: s})
	return s
}

// RemoveStroke removes the topmost stroke overlapping probe. It reports
// whether anything was removed.
func (c *Controller) RemoveStroke(probe vector.Path) bool {
	i, ok := HitTest(probe, c.strokes.items)
	if !ok {
		return false
	}
	return c.execute("remove", &removeOp{list: &c.strokes, targets: []*domain.StrokePath{c.strokes.items[i]}})
}

// SelectStrokes runs a lasso selection. A non-empty result becomes the
// selection and activates lasso-move; otherwise the selection is cleared
// and lasso-select is active. Selection is not recorded in the history.
func (c *Controller) SelectStrokes(lasso vector.Path) bool {
	matched, bounds := LassoSelect(lasso, c.strokes.items)
	if len(matched) == 0 {
		c.clearSelection()
		c.switchTool(ModeLassoSelect)
		c.refresh()
		return false
	}
	b := c.cfg.SelectionPadding.Expand(bounds)
	c.sel = selection{strokes: matched, bounds: &b}
	c.log.Debug("selection", "strokes", len(matched), "bounds", b)
	c.switchTool(ModeLassoMove)
	c.refresh()
	return true
}

// TranslateSelection moves the selected strokes and the selection bounds by
// offset as one undoable step.
func (c *Controller) TranslateSelection(offset vector.Pt) bool {
	if c.sel.empty() {
		return false
	}
	op := &translateOp{strokes: append([]*domain.StrokePath(nil), c.sel.strokes...), offset: offset, bounds: c.sel.bounds}
	return c.execute("translate", op)
}

// DeleteSelection removes every selected stroke as one undoable step and
// returns to lasso-select.
func (c *Controller) DeleteSelection() bool {
	if c.sel.empty() {
		return false
	}
	targets := c.sel.strokes
	c.clearSelection()
	return c.execute("remove", &removeOp{list: &c.strokes, targets: targets})
}

// Clear removes all strokes as one undoable step.
func (c *Controller) Clear() bool {
	if len(c.strokes.items) == 0 {
		return false
	}
	c.clearSelection()
	return c.execute("clear", &removeOp{list: &c.strokes, targets: c.Strokes()})
}

// Undo reverts the last operation. Any gesture in progress and the
// selection are dropped afterwards.
func (c *Controller) Undo() bool {
	_, ok := c.history.Undo()
	c.afterHistory("undo", ok)
	return ok
}

// Redo re-applies the last undone operation.
func (c *Controller) Redo() bool {
	_, ok := c.history.Redo()
	c.afterHistory("redo", ok)
	return ok
}

func (c *Controller) afterHistory(name string, ok bool) {
	if !ok {
		return
	}
	u, r := c.history.Stats()
	applog.WithOperation(c.log, name).Debug("history", "undo_depth", u, "redo_depth", r)
	c.clearSelection()
	c.tool().Reset()
	c.refresh()
}

func (c *Controller) CanUndo() bool { return c.history.CanUndo() }
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// HistoryDepth returns the undo and redo stack sizes.
func (c *Controller) HistoryDepth() (undo, redo int) { return c.history.Stats() }

// ---- selection ----

// HasSelection reports whether any stroke is selected.
func (c *Controller) HasSelection() bool { return !c.sel.empty() }

// Selection returns the selected strokes and the padded selection bounds
// including any live drag offset.
func (c *Controller) Selection() ([]*domain.StrokePath, vector.Rect) {
	b := *c.sel.bounds
	if !b.IsZero() {
		b = b.Offset(c.sel.preview)
	}
	return append([]*domain.StrokePath(nil), c.sel.strokes...), b
}

// ClearSelection drops the selection and leaves lasso-move.
func (c *Controller) ClearSelection() {
	c.clearSelection()
	c.refresh()
}

func (c *Controller) clearSelection() {
	c.sel = selection{bounds: new(vector.Rect)}
	if c.mode == ModeLassoMove {
		c.switchTool(ModeLassoSelect)
	}
}

// ---- viewport ----

func (c *Controller) Viewport() Viewport { return c.view }

// ResetViewport restores the identity viewport.
func (c *Controller) ResetViewport() {
	c.view = identityViewport
	c.refresh()
}

// ---- refresh signal ----

// Tick returns the refresh counter. It increases on every visible change
// and wraps to zero after math.MaxInt32.
func (c *Controller) Tick() int { return c.tick }

// Subscribe registers fn to be called synchronously with the new tick after
// every change. The returned func unsubscribes.
// Subscribers run in registration order.
func (c *Controller) Subscribe(fn func(tick int)) (unsubscribe func()) {
	s := &subscriber{fn: fn}
	c.subs = append(c.subs, s)
	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(x *subscriber) bool { return x == s })
	}
}

// RunDueTimers fires scheduled work whose delay has passed when the
// scheduler is polled (the default). Hosts call it from their frame loop.
func (c *Controller) RunDueTimers() int {
	if p, ok := c.sched.(Poller); ok {
		return p.RunDue()
	}
	return 0
}

func (c *Controller) refresh() {
	if c.tick >= math.MaxInt32 {
		c.tick = 0
	} else {
		c.tick++
	}
	// a callback may unsubscribe; iterate a snapshot
	for _, s := range slices.Clone(c.subs) {
		s.fn(c.tick)
	}
}

// ---- gesture input ----

var _ gesture.Handler = (*Controller)(nil)

// OnGestureStart forwards the touch point, in canvas coordinates, to the active tool.
func (c *Controller) OnGestureStart(p vector.Pt) {
	c.tool().Begin(c.view.ToCanvas(p))
}

// OnGestureUpdate pans and zooms the viewport for multi-touch updates unless
// the active tool holds the gesture, then forwards the step to the tool.
func (c *Controller) OnGestureUpdate(u gesture.Update) {
	m := Motion{
		Prev:  c.view.ToCanvas(u.Previous),
		Cur:   c.view.ToCanvas(u.Current),
		Zoom:  u.Zoom,
		Multi: u.MultiTouch,
	}
	if m.Zoom <= 0 {
		m.Zoom = 1
	}
	if u.MultiTouch && c.cfg.ZoomEnabled && !c.toolHoldsGesture() {
		c.view = c.view.pinch(u.Previous, u.Current, m.Zoom, c.cfg.MinZoom, c.cfg.MaxZoom)
		c.refresh()
	}
	c.tool().Move(m)
}

// OnGestureEnd lets the active tool finish or discard its gesture.
func (c *Controller) OnGestureEnd(multiTouch bool) { c.tool().End(multiTouch) }

// OnGestureCancel discards the active tool's uncommitted state.
func (c *Controller) OnGestureCancel() {
	c.tool().Cancel()
	c.refresh()
}

func (c *Controller) toolHoldsGesture() bool {
	h, ok := c.tool().(interface{ holdsGesture() bool })
	return ok && h.holdsGesture()
}
