/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"inkboard/internal/canvas"
	"inkboard/internal/domain"
	"inkboard/internal/vector"
)

func line(pts ...vector.Pt) vector.Path {
	var p vector.Path
	for i, q := range pts {
		if i == 0 {
			p.MoveToPt(q)
			continue
		}
		p.LineToPt(q)
	}
	return p
}

// sampleSnapshot builds a canvas with one of each drawable.
func sampleSnapshot(t *testing.T) canvas.Snapshot {
	t.Helper()
	c := canvas.New(canvas.DefaultConfig(), canvas.WithScheduler(&canvas.ManualScheduler{}))
	pts := []vector.Pt{{X: 10, Y: 10}, {X: 110, Y: 60}, {X: 210, Y: 10}}
	p := line(pts...)
	c.AddStroke(p, p, pts)
	it, err := c.AddSticky(domain.KindPostIt, vector.Pt{X: 300, Y: 40}, nil)
	if err != nil {
		t.Fatalf("add sticky: %v", err)
	}
	c.SetStickyText(it.ID, "hello\nworld")
	c.AddTape(vector.Pt{X: 0, Y: 300}, vector.Pt{X: 200, Y: 300})
	return c.Snapshot()
}

func TestWritePDF_CreatesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "snap.pdf")
	if err := WritePDF(sampleSnapshot(t), out, Options{Overlays: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}

func TestEncodePDF_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodePDF(sampleSnapshot(t), &buf, Options{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("missing pdf header: %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestEncodePDF_EmptyCanvas(t *testing.T) {
	c := canvas.New(canvas.DefaultConfig())
	var buf bytes.Buffer
	if err := EncodePDF(c.Snapshot(), &buf, Options{}); err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output for empty canvas")
	}
}
