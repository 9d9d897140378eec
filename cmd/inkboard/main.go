/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"inkboard/internal/config"
	"inkboard/internal/crash"
	"inkboard/internal/export"
	applog "inkboard/internal/log"
	"inkboard/internal/replay"
	"inkboard/internal/telemetry"
	"inkboard/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Inkboard canvas core")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  inkboard version|-v|--version                 Show version")
	_, _ = fmt.Fprintln(w, "  inkboard config [init]                        Print the effective config, or write defaults")
	_, _ = fmt.Fprintln(w, "  inkboard replay <script> [-pdf f] [-png f]    Replay a gesture script and export the result")
	_, _ = fmt.Fprintln(w, "          [-overlays] [-scale n] [-debug]")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(logOptions(cfg.Logging))
	defer func() { _ = applog.Close() }()
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	sess := &crash.Session{}
	defer crash.Recover(sess)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage(os.Stdout)
		return
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "config":
		if err := runConfig(cfg, args[2:]); err != nil {
			l.Error("config failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "replay":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err := runReplay(ctx, cfg, sess, args[2:])
		stop()
		if err != nil {
			l.Error("replay failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			if errors.Is(err, replay.ErrInvalidScript) || errors.Is(err, flag.ErrHelp) {
				os.Exit(2)
			}
			os.Exit(1)
		}
	case "help", "-h", "--help":
		usage(os.Stdout)
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
}

// logOptions maps the logging section; INK_LOG_* env is already applied by config.Load.
func logOptions(lc config.LoggingConfig) applog.Options {
	return applog.Options{Level: lc.Level, Format: lc.Format, AddSource: lc.Source, File: lc.File}
}

func runConfig(cfg config.AppConfig, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if len(args) > 0 && args[0] == "init" {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.SaveFile(path, config.Defaults()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("Wrote default config to", path)
		return nil
	}
	if _, err := cfg.Canvas.ToCanvas(); err != nil {
		return fmt.Errorf("canvas config: %w", err)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("# %s\n", path)
	for _, key := range []string{
		"canvas.zoom_enabled", "canvas.show_eraser", "canvas.eraser_radius", "canvas.selection_padding",
		"logging.level", "logging.format", "logging.source", "logging.file",
	} {
		if env, ok := config.EnvOverrideFor(key); ok {
			fmt.Printf("# %s overridden by %s\n", key, env)
		}
	}
	fmt.Print(string(out))
	return nil
}

func runReplay(ctx context.Context, cfg config.AppConfig, sess *crash.Session, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	pdfOut := fs.String("pdf", "", "write the final canvas as PDF")
	pngOut := fs.String("png", "", "write the final canvas as PNG")
	overlays := fs.Bool("overlays", false, "draw selection, pending path and eraser cursor")
	scale := fs.Float64("scale", 1, "export scale")
	debug := fs.Bool("debug", false, "log every replayed step")
	if len(args) == 0 {
		return fmt.Errorf("replay requires <script>")
	}
	// script first, flags after
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	path := args[0]
	if *debug {
		applog.SetLevel("debug")
	}
	l := applog.WithComponent("cli")

	s, err := replay.Load(path)
	if err != nil {
		return err
	}
	ccfg, err := s.CanvasConfigFrom(cfg.Canvas)
	if err != nil {
		return err
	}
	r := replay.NewRunner(ccfg)
	sess.Script = path
	sess.Canvas = r.Controller()

	start := time.Now()
	res, err := r.Run(ctx, s)
	if err != nil {
		report("replay_failed", map[string]any{"steps": res.Steps})
		return err
	}
	l.Info("replay done", slog.String("script", filepath.Base(path)), slog.Int("steps", res.Steps), slog.Duration("took", time.Since(start)))
	fmt.Printf("Replayed %d steps: %d strokes, %d stickies, %d tapes\n", res.Steps, res.Strokes, res.Stickies, res.Tapes)
	report("replay_done", map[string]any{"steps": res.Steps, "strokes": res.Strokes})

	opt := export.Options{Overlays: *overlays, Scale: float32(*scale)}
	snap := r.Controller().Snapshot()
	if *pdfOut != "" {
		if err := export.WritePDF(snap, *pdfOut, opt); err != nil {
			return err
		}
		fmt.Println("Wrote", *pdfOut)
	}
	if *pngOut != "" {
		if err := export.WritePNG(snap, *pngOut, opt); err != nil {
			return err
		}
		fmt.Println("Wrote", *pngOut)
	}
	return nil
}

// report sends one telemetry event and waits briefly for it to go out.
func report(name string, props map[string]any) {
	if !telemetry.Enabled() {
		return
	}
	telemetry.Event(name, props)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	telemetry.Default().Flush(ctx)
}
