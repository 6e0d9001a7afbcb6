package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// withDefaultLogger swaps the process default logger for the test's duration.
func withDefaultLogger(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func completionLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if rec["msg"] == "request completed" {
			return rec
		}
	}
	t.Fatal("no completion line logged")
	return nil
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("logs completion with status and latency", func(t *testing.T) {
		var buf bytes.Buffer
		withDefaultLogger(t, &buf)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		wrapped := RequestIDMiddleware(LoggingMiddleware(handler))

		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

		rec := completionLine(t, &buf)
		if rec["status"] != float64(http.StatusTeapot) {
			t.Errorf("status = %v", rec["status"])
		}
		if rec["request_id"] == "" {
			t.Error("request_id missing")
		}
		if rec["level"] != "WARN" {
			t.Errorf("level = %v, want WARN for 4xx", rec["level"])
		}
	})

	t.Run("surfaces fault capture on completion line", func(t *testing.T) {
		var buf bytes.Buffer
		withDefaultLogger(t, &buf)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
		wrapped := RequestIDMiddleware(LoggingMiddleware(RecoveryMiddleware(newInterceptor(), nil)(handler)))

		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

		rec := completionLine(t, &buf)
		if rec["incident_id"] == nil || rec["incident_id"] == "" {
			t.Error("incident_id missing from completion line")
		}
		if rec["classification"] != "server_fault" {
			t.Errorf("classification = %v", rec["classification"])
		}
		if rec["level"] != "ERROR" {
			t.Errorf("level = %v, want ERROR for 5xx", rec["level"])
		}
	})
}
