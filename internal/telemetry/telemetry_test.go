/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// recorder collects request bodies per path.
type recorder struct {
	mu     sync.Mutex
	bodies map[string][][]byte
	agents []string
}

func newRecorder(t *testing.T) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{bodies: map[string][][]byte{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		rec.mu.Lock()
		rec.bodies[r.URL.Path] = append(rec.bodies[r.URL.Path], b)
		rec.agents = append(rec.agents, r.UserAgent())
		rec.mu.Unlock()
		if r.URL.Path == "/reject" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return rec, srv
}

func (r *recorder) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bodies[path])
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bodies {
		n += len(b)
	}
	return n
}

func TestClient_EventPayload(t *testing.T) {
	rec, srv := newRecorder(t)
	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: 2 * time.Second})
	defer c.Close()
	if !c.Enabled() {
		t.Fatalf("expected client to be enabled")
	}

	c.Event("replay_done", map[string]any{"strokes": 3, "name": "overridden"})
	c.Flush(context.Background())
	if rec.count("/events") != 1 {
		t.Fatalf("events sent = %d, want 1", rec.count("/events"))
	}
	var m map[string]any
	if err := json.Unmarshal(rec.bodies["/events"][0], &m); err != nil {
		t.Fatalf("bad event json: %v", err)
	}
	if m["name"] != "replay_done" || m["strokes"] != float64(3) {
		t.Fatalf("payload = %v", m)
	}
	if _, ok := m["ts"].(string); !ok {
		t.Fatalf("missing ts field")
	}
	if !strings.HasPrefix(rec.agents[0], "inkboard/") {
		t.Fatalf("user agent = %q", rec.agents[0])
	}
}

func TestClient_UploadCrashIsSynchronous(t *testing.T) {
	rec, srv := newRecorder(t)
	c := New(Config{OptIn: true, CrashURL: srv.URL + "/crash"})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("events need an events URL")
	}
	c.UploadCrash([]byte("Inkboard Crash Report"))
	if rec.count("/crash") != 1 || string(rec.bodies["/crash"][0]) != "Inkboard Crash Report" {
		t.Fatalf("crash bodies = %q", rec.bodies["/crash"])
	}
}

func TestClient_SendsNothingWhenDisabled(t *testing.T) {
	rec, srv := newRecorder(t)
	cases := map[string]Config{
		"opt out": {OptIn: false, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash"},
		"no urls": {OptIn: true},
		"nil":     {},
	}
	for name, cfg := range cases {
		var c *Client
		if name != "nil" {
			c = New(cfg)
		}
		c.Event("ignored", nil)
		c.Event("", nil)
		c.UploadCrash([]byte("ignored"))
		if c != nil {
			c.Flush(context.Background())
			c.Close()
		}
		if n := rec.total(); n != 0 {
			t.Fatalf("%s: %d requests sent", name, n)
		}
	}
}

func TestClient_FlushReturnsAfterFailures(t *testing.T) {
	rec, srv := newRecorder(t)
	for _, url := range []string{"http://127.0.0.1:1/events", srv.URL + "/reject"} {
		c := New(Config{OptIn: true, EventsURL: url, CrashURL: url, Timeout: 50 * time.Millisecond})
		c.Event("replay_failed", map[string]any{"steps": 1})
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		c.Flush(ctx)
		if ctx.Err() != nil {
			t.Fatalf("%s: flush did not return after failed send", url)
		}
		cancel()
		c.UploadCrash([]byte("oops"))
		c.Close()
	}
	if rec.count("/reject") != 2 {
		t.Fatalf("rejected posts = %d, want event and crash", rec.count("/reject"))
	}
}

func TestFromEnvAndDefault(t *testing.T) {
	t.Setenv("INK_TELEMETRY_OPT_IN", "yes")
	t.Setenv("INK_TELEMETRY_URL", " http://127.0.0.1:0 ")
	t.Setenv("INK_CRASH_UPLOAD_URL", "")
	t.Setenv("INK_TELEMETRY_TIMEOUT_MS", "100")

	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL != "http://127.0.0.1:0" || cfg.CrashURL != "" || cfg.Timeout != 100*time.Millisecond {
		t.Fatalf("FromEnv = %+v", cfg)
	}
	t.Setenv("INK_TELEMETRY_TIMEOUT_MS", "-5")
	if got := FromEnv().Timeout; got != defaultTimeout {
		t.Fatalf("negative timeout = %v, want default", got)
	}

	c := New(cfg)
	defer c.Close()
	SetDefault(c)
	t.Cleanup(func() { SetDefault(nil) })
	if !Enabled() || Default() != c {
		t.Fatalf("package helpers should use the installed client")
	}
}
