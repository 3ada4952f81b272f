package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		" debug ": slog.LevelDebug,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestColorTextHandlerColorsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewColorTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	log.Warn("probe failed open")
	out := buf.String()
	if !strings.Contains(out, "\033[33m") || !strings.Contains(out, "probe failed open") {
		t.Fatalf("missing color or message: %q", out)
	}
}

func TestNewFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostvet.log")
	log, closer := New(Config{Level: "debug", File: path})
	if closer == nil {
		t.Fatal("file-backed logger must return a closer")
	}
	log.Debug("hello", "k", "v")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("log line missing: %q", string(b))
	}
}

func TestNewStderrHasNoCloser(t *testing.T) {
	log, closer := New(Config{})
	if log == nil || closer != nil {
		t.Fatal("stderr logger must have nil closer")
	}
}
