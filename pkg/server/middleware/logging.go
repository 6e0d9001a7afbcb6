package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nesteban/oops/pkg/faults"
)

// LoggingMiddleware logs HTTP requests and responses with structured logging.
// It records method, path, status code, latency and request ID, and when a
// fault was intercepted on the request it surfaces the incident id and
// classification on the completion line.
//
// Example usage:
//
//	handler = LoggingMiddleware(handler)
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		ctx := context.WithValue(r.Context(), StartTimeKey, startTime)

		// Install the capture slot here so the recovery layer below shares
		// it and this middleware can read the capture after the fact.
		ctx = faults.WithHolder(ctx)

		rw := newResponseWriter(w)

		requestID := GetRequestID(ctx)
		slog.DebugContext(ctx, "request started",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
		)

		next.ServeHTTP(rw, r.WithContext(ctx))

		latency := time.Since(startTime)

		logLevel := slog.LevelInfo
		if rw.Status() >= 500 {
			logLevel = slog.LevelError
		} else if rw.Status() >= 400 {
			logLevel = slog.LevelWarn
		}

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.Status(),
			"latency_ms", latency.Milliseconds(),
			"request_id", requestID,
			"remote_addr", r.RemoteAddr,
		}

		// The recovery middleware sits inside this one, so by the time
		// ServeHTTP returns the interceptor has already filled the slot for
		// any fault on this request.
		if c := faults.FromContext(ctx); c != nil {
			attrs = append(attrs,
				"incident_id", c.ID,
				"classification", c.Class.String(),
			)
		}

		slog.Log(ctx, logLevel, "request completed", attrs...)
	})
}

// GetStartTime extracts the request start time from the context.
// Returns zero time if not found.
func GetStartTime(ctx context.Context) time.Time {
	if startTime, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return startTime
	}
	return time.Time{}
}
