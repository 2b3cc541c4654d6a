package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.BaseRef != "HEAD" {
		t.Fatalf("BaseRef = %q, want HEAD", cfg.BaseRef)
	}
	if cfg.ContextLines != 3 {
		t.Fatalf("ContextLines = %d, want 3", cfg.ContextLines)
	}
	if cfg.SoftFocusScroll {
		t.Fatal("SoftFocusScroll should default to false")
	}
}

func TestLoadFromPathReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "base_ref: main\ncontext_lines: 5\nsoft_focus_scroll: true\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.BaseRef != "main" {
		t.Fatalf("BaseRef = %q, want main", cfg.BaseRef)
	}
	if cfg.ContextLines != 5 {
		t.Fatalf("ContextLines = %d, want 5", cfg.ContextLines)
	}
	if !cfg.SoftFocusScroll {
		t.Fatal("SoftFocusScroll should be true")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.FilePaneWidth != 40 {
		t.Fatalf("FilePaneWidth = %d, want default 40", cfg.FilePaneWidth)
	}
}
