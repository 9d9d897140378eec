/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a report file, an optional
// PDF of the canvas at the time of the crash, and exit code 2.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"inkboard/internal/canvas"
	"inkboard/internal/export"
	applog "inkboard/internal/log"
	"inkboard/internal/telemetry"
	"inkboard/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Session is what a crash report can capture. All fields are optional.
type Session struct {
	// Dir receives the report; os.TempDir() when empty.
	Dir string
	// Script names the replay script being run.
	Script string
	// Canvas is summarized in the report and saved as crash-<stamp>.pdf.
	Canvas *canvas.Controller
}

// Recover captures a panic, logs it with its stack, writes a report file,
// saves the canvas when one is attached and exits with code 2.
//
// Usage: defer crash.Recover(sess)
func Recover(s *Session) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	stamp := time.Now().Format("20060102-150405")
	reportPath, err := writeReport(s, stamp, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if s != nil && s.Canvas != nil {
		if path, err := saveCanvas(s, stamp); err != nil {
			l.Error("crash canvas export failed", slog.Any("err", err))
		} else {
			l.Info("crash canvas export written", slog.String("path", path))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func reportDir(s *Session) string {
	if s != nil && s.Dir != "" {
		_ = os.MkdirAll(s.Dir, 0o755)
		return s.Dir
	}
	return os.TempDir()
}

func writeReport(s *Session, stamp string, panicVal any, stack []byte) (string, error) {
	path := filepath.Join(reportDir(s), fmt.Sprintf("crash-%s.log", stamp))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Inkboard Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if s != nil {
		if s.Script != "" {
			_, _ = fmt.Fprintf(&buf, "Script: %s\n", s.Script)
		}
		if s.Canvas != nil {
			writeCanvasSummary(&buf, s.Canvas)
		}
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("write crash report: %w", err)
	}

	// opt-in upload, see telemetry.FromEnv
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}

// writeCanvasSummary records counts only; a corrupted controller must not
// take the report down with it.
func writeCanvasSummary(buf *bytes.Buffer, c *canvas.Controller) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(buf, "Canvas: <unavailable: %v>\n", r)
		}
	}()
	undoDepth, redoDepth := c.HistoryDepth()
	_, _ = fmt.Fprintf(buf, "Canvas: mode=%s tick=%d strokes=%d stickies=%d tapes=%d undo=%d redo=%d\n",
		c.Mode(), c.Tick(), c.StrokeCount(), len(c.Stickies()), len(c.Tapes()), undoDepth, redoDepth)
}

func saveCanvas(s *Session, stamp string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snapshot: %v", r)
		}
	}()
	path = filepath.Join(reportDir(s), fmt.Sprintf("crash-%s.pdf", stamp))
	return path, export.WritePDF(s.Canvas.Snapshot(), path, export.Options{})
}
