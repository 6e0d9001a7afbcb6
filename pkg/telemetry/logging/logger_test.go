package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "info", Format: "json", Writer: &buf})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		logger.Info("hello", "k", "v")

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if rec["msg"] != "hello" || rec["k"] != "v" {
			t.Errorf("record = %v", rec)
		}
	})

	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "info", Format: "text", Writer: &buf})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		logger.Info("hello")

		if !strings.Contains(buf.String(), "msg=hello") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("level filters lower severities", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "warn", Writer: &buf})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		logger.Info("dropped")
		logger.Warn("kept")

		out := buf.String()
		if strings.Contains(out, "dropped") {
			t.Error("info record passed a warn-level logger")
		}
		if !strings.Contains(out, "kept") {
			t.Error("warn record missing")
		}
	})

	t.Run("defaults apply for empty fields", func(t *testing.T) {
		if _, err := New(Config{}); err != nil {
			t.Errorf("New(zero config) error = %v", err)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		if _, err := New(Config{Level: "loud"}); err == nil {
			t.Error("expected error for unknown level")
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		if _, err := New(Config{Format: "xml"}); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
