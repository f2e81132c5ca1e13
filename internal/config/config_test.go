package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/fjsf/internal/app"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	cfg, err := Load([]string{"FJSF_CONFIG=" + missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.MaxVisible != app.DefaultMaxVisible || cfg.App.WidgetMaxVisible != app.DefaultWidgetMaxVisible {
		t.Fatalf("expected default row caps, got %+v", cfg.App)
	}
	if cfg.Source != "" {
		t.Fatalf("expected no source for missing file, got %q", cfg.Source)
	}
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
width = 100
height = 30
max_visible = 6
footer = true
log_file = "/tmp/from-file.log"
`)
	cfg, err := Load([]string{
		"FJSF_CONFIG=" + path,
		"FJSF_HEIGHT=40",
		"FJSF_WIDGET_MAX_VISIBLE=3",
		"FJSF_TRACE=1",
		"FJSF_WIDTH=not-a-number",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := app.Config{Width: 100, Height: 40, MaxVisible: 6, WidgetMaxVisible: 3, ShowFooter: true}
	if cfg.App != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/from-file.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Source != path {
		t.Fatalf("expected source %q, got %q", path, cfg.Source)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "colour = \"red\"\n")
	_, err := Load([]string{"FJSF_CONFIG=" + path})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, "width = [\n")
	if _, err := Load([]string{"FJSF_CONFIG=" + path}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	cfg.App.Height = -1
	if err := Validate(cfg); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative height, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	cfg := Defaults()
	cfg.App.Width = 80
	cfg.Logging.Trace = true
	args := []string{"--width", "80"}
	cfg.Snapshot(args)
	args[0] = "mutated"
	if cfg.Flags["width"] != "80" || cfg.Flags["trace"] != "true" {
		t.Fatalf("unexpected flags %v", cfg.Flags)
	}
	if cfg.Args[0] != "--width" {
		t.Fatalf("expected args to be copied, got %v", cfg.Args)
	}
}

func TestDefaultPath(t *testing.T) {
	if filepath.Base(DefaultPath()) != "config.toml" || filepath.Base(filepath.Dir(DefaultPath())) != "fjsf" {
		t.Fatalf("unexpected default path %q", DefaultPath())
	}
}
