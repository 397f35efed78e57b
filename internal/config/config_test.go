package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Render.Width != nil {
		t.Fatalf("expected empty config")
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[render]
width = 640
palette = "viridis"

[filters]
enabled = ["class", "words"]
deny = "the a"

[rotation]
probability = 0.5
steps = 3

[size]
b = 2.5

[mask]
space = "rgb"
min = [0.0, 0.0, 0.0]
max = [10.0, 10.0, 10.0]

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.Width == nil || *cfg.Render.Width != 640 || cfg.Render.Height != nil {
		t.Fatalf("unexpected render section %+v", cfg.Render)
	}
	if *cfg.Render.Palette != "viridis" || len(cfg.Filters.Enabled) != 2 || *cfg.Filters.Deny != "the a" {
		t.Fatalf("unexpected values")
	}
	if *cfg.Rotation.Probability != 0.5 || *cfg.Rotation.Steps != 3 || *cfg.Size.B != 2.5 {
		t.Fatalf("unexpected rotation or size section")
	}
	if *cfg.Mask.Space != "rgb" || len(cfg.Mask.Max) != 3 || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected mask or log section")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nwidht = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "widht") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigRejectsPartialMaskRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[mask]\nmin = [1.0, 2.0, 3.0]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for mask min without max")
	}
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "tagcloud", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "tagcloud", "tagcloud.db") {
		t.Fatalf("unexpected db path %s", got)
	}
}

func TestResizeKeepingAspect(t *testing.T) {
	if w, h := ResizeKeepingAspect(800, 600, 400, 600); w != 400 || h != 300 {
		t.Fatalf("expected 400x300, got %dx%d", w, h)
	}
	if w, h := ResizeKeepingAspect(800, 600, 800, 300); w != 400 || h != 300 {
		t.Fatalf("expected 400x300, got %dx%d", w, h)
	}
	if w, h := ResizeKeepingAspect(0, 600, 10, 20); w != 10 || h != 20 {
		t.Fatalf("expected passthrough, got %dx%d", w, h)
	}
	if got := AspectRatio(1920, 1080); got != "16 : 9" {
		t.Fatalf("unexpected ratio %s", got)
	}
}
