package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/pitype/internal/config"
	"github.com/verte-zerg/pitype/internal/model"
	"github.com/verte-zerg/pitype/internal/pi"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{RowWidth: 25, FPS: 60}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validateConfig(model.Config{RowWidth: -1, FPS: 60}); err == nil {
		t.Fatalf("expected error for negative row width")
	}
	if err := validateConfig(model.Config{RowWidth: 25, FPS: 0}); err == nil {
		t.Fatalf("expected error for zero fps")
	}
	if err := validateConfig(model.Config{RowWidth: 25, FPS: maxFPS + 1}); err == nil {
		t.Fatalf("expected error for fps above max")
	}
}

func TestResolveConfigFileOverridesDefaults(t *testing.T) {
	cmd := newRootCmd()
	fc := config.FileConfig{
		Widget: config.WidgetConfig{RowWidth: intPtr(20), FPS: intPtr(30), ShowDigits: boolPtr(true)},
		Log:    config.LogConfig{File: strPtr("/tmp/pitype.log")},
	}
	cfg := resolveConfig(cmd, fc)
	if cfg.RowWidth != 20 || cfg.FPS != 30 || !cfg.ShowDigits || cfg.LogFile != "/tmp/pitype.log" {
		t.Fatalf("unexpected resolved config: %+v", cfg)
	}
}

func TestResolveConfigFlagsWin(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("fps", "90"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	fc := config.FileConfig{Widget: config.WidgetConfig{FPS: intPtr(30)}}
	cfg := resolveConfig(cmd, fc)
	if cfg.FPS != 90 {
		t.Fatalf("expected flag value to win, got %d", cfg.FPS)
	}
	if cfg.RowWidth != defaultRowWidth {
		t.Fatalf("expected default row width, got %d", cfg.RowWidth)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitype", "config.toml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write default config: %v", err)
	}
	fc, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("decode default config: %v", err)
	}
	if fc.Widget.RowWidth != nil || fc.Widget.FPS != nil {
		t.Fatalf("expected all template values to be commented out")
	}
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("expected existing config to be left alone: %v", err)
	}
}

func TestRenderDigitsRows(t *testing.T) {
	out := renderDigits(25, false)
	rows := strings.Split(out, "\n")
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if !strings.HasPrefix(rows[0], "3.14159") {
		t.Fatalf("unexpected first row %q", rows[0])
	}
	joined := strings.ReplaceAll(strings.ReplaceAll(out, "\n", ""), " ", "")
	if joined != pi.Display() {
		t.Fatalf("row layout changed the digits")
	}
}

func TestRenderDigitsUnwrapped(t *testing.T) {
	if got := renderDigits(0, false); got != pi.Display() {
		t.Fatalf("unexpected single line output %q", got)
	}
}

func TestClampRowWidth(t *testing.T) {
	if got := clampRowWidth(25, 80); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := clampRowWidth(25, 10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := clampRowWidth(0, 60); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
	if got := clampRowWidth(25, 0); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}
