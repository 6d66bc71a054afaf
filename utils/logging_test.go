package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	levels := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range levels {
		got, err := ParseLogLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Fatal("Expected an error for an unknown level")
	}
}

func TestSetLoggerWritesToFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	path := filepath.Join(t.TempDir(), "ledger.log")
	closeLog, err := SetLogger(path, "info")
	if err != nil {
		t.Fatal(err)
	}
	slog.Debug("hidden")
	slog.Info("visible", slog.Int("worker", 3))
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "hidden") {
		t.Fatal("A debug record was written at info level")
	}
	if !strings.Contains(string(content), "visible") || !strings.Contains(string(content), "worker=3") {
		t.Fatalf("Unexpected log content %q", content)
	}
	if !strings.Contains(string(content), "source=logging_test.go:") {
		t.Fatalf("Expected a short caller location in %q", content)
	}
}
