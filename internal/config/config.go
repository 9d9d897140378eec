/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"inkboard/internal/canvas"
	"inkboard/internal/domain"
	"inkboard/internal/vector"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Fields missing from the file keep their defaults.

type CanvasConfig struct {
	ZoomEnabled  bool    `yaml:"zoom_enabled"`
	MinZoom      float32 `yaml:"min_zoom"`
	MaxZoom      float32 `yaml:"max_zoom"`
	ShowEraser   bool    `yaml:"show_eraser"`
	EraserRadius float32 `yaml:"eraser_radius"`

	PenColor   string  `yaml:"pen_color"`
	PenWidth   float32 `yaml:"pen_width"`
	LassoColor string  `yaml:"lasso_color"`
	LassoWidth float32 `yaml:"lasso_width"`
	LaserColor string  `yaml:"laser_color"`
	LaserWidth float32 `yaml:"laser_width"`
	TapeColor  string  `yaml:"tape_color"`
	TapeWidth  float32 `yaml:"tape_width"`

	SelectionPadding float32 `yaml:"selection_padding"` // per edge
	TapRadius        float32 `yaml:"tap_radius"`
	TouchSlop        float32 `yaml:"touch_slop"`
	LaserFadeMs      int     `yaml:"laser_fade_ms"`
	MaxStickyScale   float32 `yaml:"max_sticky_scale"`
	UndoDepth        int     `yaml:"undo_depth"` // 0 = unlimited

	Background      string `yaml:"background"`
	BackgroundImage string `yaml:"background_image"`
	ContentFit      string `yaml:"content_fit"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas: CanvasConfig{
			ZoomEnabled:      true,
			MinZoom:          0.25,
			MaxZoom:          8,
			ShowEraser:       true,
			EraserRadius:     20,
			PenColor:         "#000000",
			PenWidth:         4,
			LassoColor:       "gray",
			LassoWidth:       2,
			LaserColor:       "red",
			LaserWidth:       6,
			TapeColor:        "#e6dca0c8",
			TapeWidth:        20,
			SelectionPadding: 20,
			TapRadius:        10,
			TouchSlop:        0,
			LaserFadeMs:      1500,
			MaxStickyScale:   5,
			UndoDepth:        0,
			Background:       "white",
			ContentFit:       "contain",
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvZoomEnabled      = "INK_ZOOM_ENABLED"
	EnvShowEraser       = "INK_SHOW_ERASER"
	EnvEraserRadius     = "INK_ERASER_RADIUS"
	EnvSelectionPadding = "INK_SELECTION_PADDING"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "INK_LOG_LEVEL"
	EnvLogFormat = "INK_LOG_FORMAT"
	EnvLogSource = "INK_LOG_SOURCE"
	EnvLogFile   = "INK_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Inkboard")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Inkboard")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "inkboard")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing or unreadable file is not an error.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads the config at path over the defaults and applies environment overrides.
// On error the returned config still holds defaults plus overrides.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config: %w", err)
	}
	fileCfg := Defaults()
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	mergeInto(&cfg, &fileCfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML to path, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// canvas: booleans copy directly so user preferences persist
	sc, dc := &src.Canvas, &dst.Canvas
	dc.ZoomEnabled = sc.ZoomEnabled
	dc.ShowEraser = sc.ShowEraser
	mergeFloat(&dc.MinZoom, sc.MinZoom)
	mergeFloat(&dc.MaxZoom, sc.MaxZoom)
	mergeFloat(&dc.EraserRadius, sc.EraserRadius)
	mergeFloat(&dc.PenWidth, sc.PenWidth)
	mergeFloat(&dc.LassoWidth, sc.LassoWidth)
	mergeFloat(&dc.LaserWidth, sc.LaserWidth)
	mergeFloat(&dc.TapeWidth, sc.TapeWidth)
	mergeFloat(&dc.TapRadius, sc.TapRadius)
	mergeFloat(&dc.MaxStickyScale, sc.MaxStickyScale)
	if sc.SelectionPadding >= 0 {
		dc.SelectionPadding = sc.SelectionPadding
	}
	if sc.TouchSlop >= 0 {
		dc.TouchSlop = sc.TouchSlop
	}
	if sc.LaserFadeMs > 0 {
		dc.LaserFadeMs = sc.LaserFadeMs
	}
	if sc.UndoDepth >= 0 {
		dc.UndoDepth = sc.UndoDepth
	}
	mergeString(&dc.PenColor, sc.PenColor)
	mergeString(&dc.LassoColor, sc.LassoColor)
	mergeString(&dc.LaserColor, sc.LaserColor)
	mergeString(&dc.TapeColor, sc.TapeColor)
	mergeString(&dc.Background, sc.Background)
	dc.BackgroundImage = strings.TrimSpace(sc.BackgroundImage)
	if strings.TrimSpace(sc.ContentFit) != "" {
		dc.ContentFit = strings.ToLower(strings.TrimSpace(sc.ContentFit))
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func mergeFloat(dst *float32, v float32) {
	if v > 0 {
		*dst = v
	}
}

func mergeString(dst *string, v string) {
	if s := strings.TrimSpace(v); s != "" {
		*dst = s
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvZoomEnabled)); v != "" {
		cfg.Canvas.ZoomEnabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvShowEraser)); v != "" {
		cfg.Canvas.ShowEraser = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvEraserRadius)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Canvas.EraserRadius = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSelectionPadding)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			cfg.Canvas.SelectionPadding = float32(f)
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "canvas.zoom_enabled":
		env = EnvZoomEnabled
	case "canvas.show_eraser":
		env = EnvShowEraser
	case "canvas.eraser_radius":
		env = EnvEraserRadius
	case "canvas.selection_padding":
		env = EnvSelectionPadding
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// ToCanvas converts the file settings into a controller configuration.
func (c CanvasConfig) ToCanvas() (canvas.Config, error) {
	out := canvas.DefaultConfig()
	out.ZoomEnabled = c.ZoomEnabled
	out.ShowEraser = c.ShowEraser
	if c.MinZoom > 0 {
		out.MinZoom = c.MinZoom
	}
	if c.MaxZoom > 0 {
		out.MaxZoom = c.MaxZoom
	}
	if c.EraserRadius > 0 {
		out.EraserRadius = c.EraserRadius
	}
	var err error
	if out.PenPaint, err = paintFrom(out.PenPaint, c.PenColor, c.PenWidth); err != nil {
		return out, fmt.Errorf("pen_color: %w", err)
	}
	if out.LassoPaint, err = paintFrom(out.LassoPaint, c.LassoColor, c.LassoWidth); err != nil {
		return out, fmt.Errorf("lasso_color: %w", err)
	}
	if out.LaserPaint, err = paintFrom(out.LaserPaint, c.LaserColor, c.LaserWidth); err != nil {
		return out, fmt.Errorf("laser_color: %w", err)
	}
	if out.TapePaint, err = paintFrom(out.TapePaint, c.TapeColor, c.TapeWidth); err != nil {
		return out, fmt.Errorf("tape_color: %w", err)
	}
	if c.SelectionPadding >= 0 {
		out.SelectionPadding = canvas.Uniform(c.SelectionPadding)
	}
	if c.TapRadius > 0 {
		out.TapRadius = c.TapRadius
	}
	out.TouchSlop = max(c.TouchSlop, 0)
	if c.LaserFadeMs > 0 {
		out.LaserFadeDelay = time.Duration(c.LaserFadeMs) * time.Millisecond
	}
	if c.MaxStickyScale >= 1 {
		out.MaxStickyScale = c.MaxStickyScale
	}
	out.UndoDepth = max(c.UndoDepth, 0)
	if strings.TrimSpace(c.Background) != "" {
		bg, err := vector.ParseColor(c.Background)
		if err != nil {
			return out, fmt.Errorf("background: %w", err)
		}
		out.Background.Color = bg
	}
	out.Background.Image = c.BackgroundImage
	fit, err := domain.ParseContentFit(c.ContentFit)
	if err != nil {
		return out, err
	}
	out.Background.Fit = fit
	return out, nil
}

func paintFrom(base vector.Paint, color string, width float32) (vector.Paint, error) {
	p := base.Copy()
	if strings.TrimSpace(color) != "" {
		col, err := vector.ParseColor(color)
		if err != nil {
			return base, err
		}
		p = p.WithColor(col)
	}
	if width > 0 {
		p = p.WithWidth(width)
	}
	return p, nil
}
