package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() on missing file returned error: %v", err)
	}
	if cfg.Level != "INFO" || !cfg.Console {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	data := `
logging:
  level: DEBUG
  console: true
  format: json
  file: true
  file_path: logs/test.log
  file_max_size_mb: 2
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if !cfg.File || cfg.FilePath != "logs/test.log" || cfg.FileMaxSizeMB != 2 {
		t.Errorf("file settings not applied: %+v", cfg)
	}
}

func TestInitializeAndLogDoesNotPanic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Console = false
	cfg.File = true
	cfg.FilePath = filepath.Join(t.TempDir(), "logs", "delvegen.log")
	Initialize(cfg)

	Debug("debug line", "k", 1)
	Info("info line", "k", 2)
	Warning("warning line")
	Error("error line", "err", "boom")
}
