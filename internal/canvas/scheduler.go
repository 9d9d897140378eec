/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import "time"

// Stopper cancels a scheduled call. Stop reports whether the call was
// prevented from running.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d. The laser fade uses it. f must run on the
// goroutine that owns the controller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// Poller is a Scheduler whose due calls run only when the host asks.
type Poller interface {
	Scheduler
	RunDue() int
}

// ClockScheduler is the default Scheduler: calls wait against the wall
// clock and fire from RunDue, which the host calls on its own loop.
type ClockScheduler struct {
	// Now defaults to time.Now.
	Now    func() time.Time
	origin time.Time
	q      ManualScheduler
}

func (s *ClockScheduler) elapsed() time.Duration {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	if s.origin.IsZero() {
		s.origin = t
	}
	return t.Sub(s.origin)
}

func (s *ClockScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	if e := s.elapsed(); e > s.q.now {
		s.q.now = e
	}
	return s.q.AfterFunc(d, f)
}

// RunDue fires every call whose delay has passed and returns how many ran.
func (s *ClockScheduler) RunDue() int {
	d := s.elapsed() - s.q.now
	return s.q.Advance(max(d, 0))
}

// Pending counts calls still waiting.
func (s *ClockScheduler) Pending() int { return s.q.Pending() }

// dispatchScheduler waits on a runtime timer and hands f to post, which
// queues it onto the host's UI loop.
type dispatchScheduler struct{ post func(func()) }

func (s dispatchScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, func() { s.post(f) })
}

// ManualScheduler queues calls until Advance or RunAll is invoked. It drives
// timers deterministically in tests and script replays.
type ManualScheduler struct {
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Stopper {
	t := &manualTimer{at: m.now + d, f: f}
	m.pending = append(m.pending, t)
	return t
}

// Advance moves the clock forward by d and fires every timer that is due.
func (m *ManualScheduler) Advance(d time.Duration) int {
	m.now += d
	return m.fire(func(t *manualTimer) bool { return t.at <= m.now })
}

// RunAll fires every pending timer regardless of its deadline.
func (m *ManualScheduler) RunAll() int {
	return m.fire(func(*manualTimer) bool { return true })
}

// Pending counts timers that are neither stopped nor fired.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (m *ManualScheduler) fire(due func(*manualTimer) bool) int {
	n := 0
	var keep []*manualTimer
	queued := m.pending
	m.pending = nil
	for _, t := range queued {
		switch {
		case t.stopped:
		case due(t):
			t.fired = true
			t.f()
			n++
		default:
			keep = append(keep, t)
		}
	}
	// timers scheduled by a fired callback were appended to m.pending
	m.pending = append(keep, m.pending...)
	return n
}
