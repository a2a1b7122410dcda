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
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/vector"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// The json tags exist for schema validation only.

type BoardConfig struct {
	WorldWidth   float32 `yaml:"world_width" json:"world_width"`
	WorldHeight  float32 `yaml:"world_height" json:"world_height"`
	CanvasWidth  int     `yaml:"canvas_width" json:"canvas_width"`
	CanvasHeight int     `yaml:"canvas_height" json:"canvas_height"`
	MaxZoom      float32 `yaml:"max_zoom" json:"max_zoom"`
	ZoomStep     float32 `yaml:"zoom_step" json:"zoom_step"`
	AnimationMs  int     `yaml:"animation_ms" json:"animation_ms"`
	Background   string  `yaml:"background" json:"background"`
	// GridSize spaces the background grid in world units; 0 hides it.
	GridSize float32 `yaml:"grid_size" json:"grid_size"`
}

type PathConfig struct {
	MinSpacing float32 `yaml:"min_spacing" json:"min_spacing"`
	PenWidth   float32 `yaml:"pen_width" json:"pen_width"`
	PenColor   string  `yaml:"pen_color" json:"pen_color"`
}

type InputConfig struct {
	ProbeSize  float32 `yaml:"probe_size" json:"probe_size"`
	EraserSize float32 `yaml:"eraser_size" json:"eraser_size"`
	CursorSize float32 `yaml:"cursor_size" json:"cursor_size"`
}

type UndoConfig struct {
	Depth      int `yaml:"depth" json:"depth"`
	CoalesceMs int `yaml:"coalesce_ms" json:"coalesce_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

// ExportConfig.Background overrides the board colour in exports; empty keeps it.
type ExportConfig struct {
	Scale      float32 `yaml:"scale" json:"scale"`
	Background string  `yaml:"background" json:"background"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version" json:"config_version"`
	Board         BoardConfig   `yaml:"board" json:"board"`
	Path          PathConfig    `yaml:"path" json:"path"`
	Input         InputConfig   `yaml:"input" json:"input"`
	Undo          UndoConfig    `yaml:"undo" json:"undo"`
	Logging       LoggingConfig `yaml:"logging" json:"logging"`
	Export        ExportConfig  `yaml:"export" json:"export"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Board: BoardConfig{
			WorldWidth: 6912, WorldHeight: 4468,
			CanvasWidth: 1280, CanvasHeight: 800,
			MaxZoom: 2.25, ZoomStep: 0.1, AnimationMs: 200,
			Background: "#ffffff", GridSize: 100,
		},
		Path:    PathConfig{MinSpacing: 8, PenWidth: 3, PenColor: "#000000"},
		Input:   InputConfig{ProbeSize: 1, EraserSize: 24, CursorSize: 10},
		Undo:    UndoConfig{Depth: 100, CoalesceMs: 250},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Export:  ExportConfig{Scale: 1},
	}
}

// EnvPrefix namespaces the override variables, e.g. GWB_PATH_MIN_SPACING.
// EnvConfigPath points Load and Save at an explicit file.
const (
	EnvPrefix     = "GWB"
	EnvConfigPath = "GWB_CONFIG"
)

// overrides mirrors the tunables that may come from the environment. Nil
// fields were not set and leave the file value alone.
type overrides struct {
	WorldWidth   *float32 `envconfig:"BOARD_WORLD_WIDTH"`
	WorldHeight  *float32 `envconfig:"BOARD_WORLD_HEIGHT"`
	CanvasWidth  *int     `envconfig:"BOARD_CANVAS_WIDTH"`
	CanvasHeight *int     `envconfig:"BOARD_CANVAS_HEIGHT"`
	MaxZoom      *float32 `envconfig:"BOARD_MAX_ZOOM"`
	ZoomStep     *float32 `envconfig:"BOARD_ZOOM_STEP"`
	AnimationMs  *int     `envconfig:"BOARD_ANIMATION_MS"`
	GridSize     *float32 `envconfig:"BOARD_GRID_SIZE"`
	MinSpacing   *float32 `envconfig:"PATH_MIN_SPACING"`
	PenWidth     *float32 `envconfig:"PATH_PEN_WIDTH"`
	PenColor     *string  `envconfig:"PATH_PEN_COLOR"`
	ProbeSize    *float32 `envconfig:"INPUT_PROBE_SIZE"`
	EraserSize   *float32 `envconfig:"INPUT_ERASER_SIZE"`
	CursorSize   *float32 `envconfig:"INPUT_CURSOR_SIZE"`
	UndoDepth    *int     `envconfig:"UNDO_DEPTH"`
	CoalesceMs   *int     `envconfig:"UNDO_COALESCE_MS"`
	LogLevel     *string  `envconfig:"LOG_LEVEL"`
	LogFormat    *string  `envconfig:"LOG_FORMAT"`
	LogSource    *bool    `envconfig:"LOG_SOURCE"`
	LogFile      *string  `envconfig:"LOG_FILE"`
	ExportScale  *float32 `envconfig:"EXPORT_SCALE"`
}

// envKeys maps config keys to the variable that overrides them.
var envKeys = map[string]string{
	"board.world_width":   "BOARD_WORLD_WIDTH",
	"board.world_height":  "BOARD_WORLD_HEIGHT",
	"board.canvas_width":  "BOARD_CANVAS_WIDTH",
	"board.canvas_height": "BOARD_CANVAS_HEIGHT",
	"board.max_zoom":      "BOARD_MAX_ZOOM",
	"board.zoom_step":     "BOARD_ZOOM_STEP",
	"board.animation_ms":  "BOARD_ANIMATION_MS",
	"board.grid_size":     "BOARD_GRID_SIZE",
	"path.min_spacing":    "PATH_MIN_SPACING",
	"path.pen_width":      "PATH_PEN_WIDTH",
	"path.pen_color":      "PATH_PEN_COLOR",
	"input.probe_size":    "INPUT_PROBE_SIZE",
	"input.eraser_size":   "INPUT_ERASER_SIZE",
	"input.cursor_size":   "INPUT_CURSOR_SIZE",
	"undo.depth":          "UNDO_DEPTH",
	"undo.coalesce_ms":    "UNDO_COALESCE_MS",
	"logging.level":       "LOG_LEVEL",
	"logging.format":      "LOG_FORMAT",
	"logging.source":      "LOG_SOURCE",
	"logging.file":        "LOG_FILE",
	"export.scale":        "EXPORT_SCALE",
}

// ErrInvalid is wrapped by Validate and Load when the config breaks the schema.
var ErrInvalid = errors.New("invalid config")

//go:embed schema.json
var schemaJSON []byte

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoWhiteboard")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoWhiteboard")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "gowhiteboard")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "gowhiteboard")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, merges
// environment overrides and validates the result.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(path)
}

// LoadFrom is Load for an explicit file. A missing file is not an error.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg AppConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks cfg against the embedded JSON schema.
func Validate(cfg AppConfig) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func set[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func trimmed(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func mergeInto(dst *AppConfig, src *AppConfig) {
	set(&dst.ConfigVersion, src.ConfigVersion)

	set(&dst.Board.WorldWidth, src.Board.WorldWidth)
	set(&dst.Board.WorldHeight, src.Board.WorldHeight)
	set(&dst.Board.CanvasWidth, src.Board.CanvasWidth)
	set(&dst.Board.CanvasHeight, src.Board.CanvasHeight)
	set(&dst.Board.MaxZoom, src.Board.MaxZoom)
	set(&dst.Board.ZoomStep, src.Board.ZoomStep)
	set(&dst.Board.AnimationMs, src.Board.AnimationMs)
	set(&dst.Board.Background, strings.TrimSpace(src.Board.Background))
	// like min_spacing below, a zero grid only comes from GWB_BOARD_GRID_SIZE=0
	set(&dst.Board.GridSize, src.Board.GridSize)

	// zero spacing is meaningful but indistinguishable from unset here;
	// GWB_PATH_MIN_SPACING=0 still reaches it
	set(&dst.Path.MinSpacing, src.Path.MinSpacing)
	set(&dst.Path.PenWidth, src.Path.PenWidth)
	set(&dst.Path.PenColor, strings.TrimSpace(src.Path.PenColor))

	set(&dst.Input.ProbeSize, src.Input.ProbeSize)
	set(&dst.Input.EraserSize, src.Input.EraserSize)
	set(&dst.Input.CursorSize, src.Input.CursorSize)

	set(&dst.Undo.Depth, src.Undo.Depth)
	set(&dst.Undo.CoalesceMs, src.Undo.CoalesceMs)

	// logging
	set(&dst.Logging.Level, trimmed(src.Logging.Level))
	set(&dst.Logging.Format, trimmed(src.Logging.Format))
	dst.Logging.Source = src.Logging.Source
	set(&dst.Logging.File, strings.TrimSpace(src.Logging.File))

	set(&dst.Export.Scale, src.Export.Scale)
	set(&dst.Export.Background, strings.TrimSpace(src.Export.Background))
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	var ov overrides
	if err := envconfig.Process(EnvPrefix, &ov); err != nil {
		return fmt.Errorf("env overrides: %w", err)
	}
	assign(&cfg.Board.WorldWidth, ov.WorldWidth)
	assign(&cfg.Board.WorldHeight, ov.WorldHeight)
	assign(&cfg.Board.CanvasWidth, ov.CanvasWidth)
	assign(&cfg.Board.CanvasHeight, ov.CanvasHeight)
	assign(&cfg.Board.MaxZoom, ov.MaxZoom)
	assign(&cfg.Board.ZoomStep, ov.ZoomStep)
	assign(&cfg.Board.AnimationMs, ov.AnimationMs)
	assign(&cfg.Board.GridSize, ov.GridSize)
	assign(&cfg.Path.MinSpacing, ov.MinSpacing)
	assign(&cfg.Path.PenWidth, ov.PenWidth)
	assign(&cfg.Path.PenColor, ov.PenColor)
	assign(&cfg.Input.ProbeSize, ov.ProbeSize)
	assign(&cfg.Input.EraserSize, ov.EraserSize)
	assign(&cfg.Input.CursorSize, ov.CursorSize)
	assign(&cfg.Undo.Depth, ov.UndoDepth)
	assign(&cfg.Undo.CoalesceMs, ov.CoalesceMs)
	assign(&cfg.Logging.Level, ov.LogLevel)
	assign(&cfg.Logging.Format, ov.LogFormat)
	assign(&cfg.Logging.Source, ov.LogSource)
	assign(&cfg.Logging.File, ov.LogFile)
	assign(&cfg.Export.Scale, ov.ExportScale)
	cfg.Logging.Level = trimmed(cfg.Logging.Level)
	cfg.Logging.Format = trimmed(cfg.Logging.Format)
	return nil
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	suffix, ok := envKeys[key]
	if !ok {
		return "", false
	}
	name := EnvPrefix + "_" + suffix
	if _, present := os.LookupEnv(name); present {
		return name, true
	}
	return "", false
}

// OverriddenKeys lists the config keys currently set from the environment, sorted.
func OverriddenKeys() []string {
	var out []string
	for _, key := range slices.Sorted(maps.Keys(envKeys)) {
		if _, ok := EnvOverrideFor(key); ok {
			out = append(out, key)
		}
	}
	return out
}

// AnimationDuration is the zoom animation length.
func (b BoardConfig) AnimationDuration() time.Duration {
	return time.Duration(b.AnimationMs) * time.Millisecond
}

// BackgroundColor falls back to white when the value does not parse.
func (b BoardConfig) BackgroundColor() vector.Color {
	c, err := vector.ParseHex(b.Background)
	if err != nil {
		return vector.White
	}
	return c
}

func (u UndoConfig) CoalesceInterval() time.Duration {
	return time.Duration(u.CoalesceMs) * time.Millisecond
}

// Pen is the stroke new drawings start with.
func (p PathConfig) Pen() vector.Stroke {
	pen := vector.DefaultPen
	if p.PenWidth > 0 {
		pen.Width = p.PenWidth
	}
	if c, err := vector.ParseHex(p.PenColor); err == nil {
		pen.Color = c
	}
	return pen
}

// BackgroundColor returns the export override; ok is false when the board
// colour should be kept.
func (e ExportConfig) BackgroundColor() (vector.Color, bool) {
	if strings.TrimSpace(e.Background) == "" {
		return vector.Color{}, false
	}
	c, err := vector.ParseHex(e.Background)
	if err != nil {
		return vector.Color{}, false
	}
	return c, true
}

// LogOptions converts the logging section for applog.Init.
func (l LoggingConfig) LogOptions() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}
