/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in, anonymous usage events (for example a
// replay summary) and crash reports to configured HTTP endpoints.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	applog "inkboard/internal/log"
	"inkboard/internal/version"
)

// Config holds runtime configuration. Everything is disabled by default.
//
// Environment variables (read by FromEnv):
// - INK_TELEMETRY_OPT_IN: "1", "true", "yes" or "on" to enable
// - INK_TELEMETRY_URL: endpoint for JSON events
// - INK_CRASH_UPLOAD_URL: endpoint for plain-text crash reports
// - INK_TELEMETRY_TIMEOUT_MS: request timeout, default 1500
//
// Without URLs nothing is sent, even when opted in.
type Config struct {
	OptIn     bool
	EventsURL string
	CrashURL  string
	Timeout   time.Duration
}

const defaultTimeout = 1500 * time.Millisecond

func FromEnv() Config {
	cfg := Config{
		OptIn:     parseBool(os.Getenv("INK_TELEMETRY_OPT_IN")),
		EventsURL: strings.TrimSpace(os.Getenv("INK_TELEMETRY_URL")),
		CrashURL:  strings.TrimSpace(os.Getenv("INK_CRASH_UPLOAD_URL")),
		Timeout:   defaultTimeout,
	}
	if ms := strings.TrimSpace(os.Getenv("INK_TELEMETRY_TIMEOUT_MS")); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil && v > 0 {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Client posts events from a background goroutine through a bounded queue.
// Events are dropped when the queue is full or a request fails.
type Client struct {
	cfg     Config
	log     *slog.Logger
	cli     *http.Client
	queue   chan []byte
	pending sync.WaitGroup
	stop    chan struct{}
	once    sync.Once
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg:   cfg,
		log:   applog.WithComponent("telemetry"),
		cli:   &http.Client{Timeout: cfg.Timeout},
		queue: make(chan []byte, 64),
		stop:  make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether events would be sent.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event queues a named event. Props must not carry user content.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	payload := map[string]any{
		"name":    name,
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"version": version.String(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
	for k, v := range props {
		if _, reserved := payload[k]; !reserved {
			payload[k] = v
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.log.Debug("telemetry event dropped", slog.String("name", name), slog.Any("err", err))
		return
	}
	c.pending.Add(1)
	select {
	case c.queue <- body:
	default:
		c.pending.Done()
	}
}

// Flush waits until queued events were attempted or ctx is done.
func (c *Client) Flush(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close stops the background sender. Queued events are discarded.
func (c *Client) Close() { c.once.Do(func() { close(c.stop) }) }

func (c *Client) loop() {
	for {
		select {
		case <-c.stop:
			return
		case body := <-c.queue:
			c.post(c.cfg.EventsURL, "application/json", body)
			c.pending.Done()
		}
	}
}

func (c *Client) post(url, contentType string, body []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "inkboard/"+version.String())
	resp, err := c.cli.Do(req)
	if err != nil {
		c.log.Debug("telemetry post failed", slog.String("url", url), slog.Any("err", err))
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		c.log.Debug("telemetry post rejected", slog.String("url", url), slog.Int("status", resp.StatusCode))
	}
}

// UploadCrash posts a crash report synchronously; the process is about to exit.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", report)
}

var (
	defaultClient *Client
	defaultMu     sync.Mutex
)

// Default returns the package client, built from the environment on first use.
func Default() *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		defaultClient = New(FromEnv())
	}
	return defaultClient
}

// SetDefault replaces the package client.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClient = c
}

func Enabled() bool                           { return Default().Enabled() }
func Event(name string, props map[string]any) { Default().Event(name, props) }
func UploadCrash(report []byte)               { Default().UploadCrash(report) }
