/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "inkboard/internal/vector"

// Laser ink is ephemeral: finished paths collect in a list that a fade
// timer clears after the configured delay. A new touch stops a pending fade.

// LaserPaths returns copies of the finished laser paths.
func (c *Controller) LaserPaths() []vector.Path {
	out := make([]vector.Path, len(c.laserPaths))
	for i, p := range c.laserPaths {
		out[i] = p.Clone()
	}
	return out
}

// IsLaserActive is true from a laser touch until the laser paths are cleared.
func (c *Controller) IsLaserActive() bool { return c.laserActive }

// ClearLaserPaths drops all laser ink.
func (c *Controller) ClearLaserPaths() {
	c.stopFade()
	c.laserPaths = nil
	c.laserActive = false
	c.refresh()
}

func (c *Controller) stopFade() {
	c.fadeGen++
	if c.fade != nil {
		c.fade.Stop()
		c.fade = nil
	}
}

func (c *Controller) scheduleFade() {
	c.stopFade()
	gen := c.fadeGen
	c.fade = c.sched.AfterFunc(c.cfg.LaserFadeDelay, func() {
		// a timer that already fired cannot be stopped; ignore stale ones
		if gen != c.fadeGen {
			return
		}
		c.fade = nil
		c.ClearLaserPaths()
	})
}

type laserTool struct {
	c      *Controller
	active bool
	path   vector.Path
	prev   vector.Pt
}

func (t *laserTool) Mode() ToolMode { return ModeLaser }

func (t *laserTool) Begin(p vector.Pt) {
	t.c.stopFade()
	t.Reset()
	t.active = true
	t.path.MoveToPt(p)
	t.path.LineToPt(p)
	t.prev = p
	t.c.laserActive = true
	t.c.refresh()
}

func (t *laserTool) Move(m Motion) {
	if !t.active || m.Multi {
		return
	}
	t.path.QuadToPt(t.prev, t.prev.Mid(m.Cur))
	t.prev = m.Cur
	t.c.laserActive = true
	t.c.refresh()
}

// End files the path with the other laser ink and starts the fade.
func (t *laserTool) End(bool) {
	if !t.active {
		return
	}
	t.path.LineToPt(t.prev)
	t.c.laserPaths = append(t.c.laserPaths, t.path.Clone())
	t.Reset()
	t.c.laserActive = true
	t.c.scheduleFade()
	t.c.refresh()
}

func (t *laserTool) Cancel() {
	t.Reset()
	if len(t.c.laserPaths) > 0 {
		t.c.scheduleFade()
		return
	}
	t.c.laserActive = false
}

func (t *laserTool) Reset() {
	t.active = false
	t.path.Reset()
}

func (t *laserTool) Pending() []vector.Path {
	if !t.active {
		return nil
	}
	return []vector.Path{t.path.Clone()}
}
