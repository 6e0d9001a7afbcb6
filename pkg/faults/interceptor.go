package faults

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Interceptor is the orchestrator for errors that escape handler code. It
// runs synchronously on the goroutine that was serving the request, exactly
// once per escaped error.
type Interceptor struct {
	logger   *slog.Logger
	reporter Reporter
	renderer Renderer
}

// NewInterceptor wires an interceptor. reporter may be nil when no
// diagnostic side channel is configured; logger and renderer must not be.
func NewInterceptor(logger *slog.Logger, reporter Reporter, renderer Renderer) *Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interceptor{
		logger:   logger,
		reporter: reporter,
		renderer: renderer,
	}
}

// Intercept handles an error that escaped normal processing of r. The
// returned error is non-nil only when rendering the error page failed for a
// reason other than the client disconnecting; in that case the caller must
// surface it to the hosting layer, since no further recovery is possible.
//
// The committed check, the log record, the diagnostics notification, and the
// render attempt happen in that exact order.
func (i *Interceptor) Intercept(w ResponseWriter, r *http.Request, err error) error {
	ctx := r.Context()

	// A committed response means a failure mid body write. Rendering on top
	// of it would corrupt the stream, and this early return is what stops a
	// second failure from cascading into endless error handling.
	if w.Committed() {
		i.logger.Log(ctx, levelFor(Classify(err)), "fault after response commit",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		return nil
	}

	c := NewCapture(err)
	attach(ctx, c)

	i.logger.Log(ctx, levelFor(c.Class), "caught unhandled fault",
		"incident_id", c.ID,
		"classification", c.Class.String(),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	Notify(i.logger, i.reporter, err)

	// A disconnect has nobody left on the other end of the socket; the
	// capture is logged and reported but never rendered.
	if c.Class == Disconnected {
		return nil
	}

	if renderErr := i.renderer.Render(w, r, c); renderErr != nil {
		if Classify(renderErr) == Disconnected {
			// The client is already gone; there is nobody to tell.
			i.logger.Debug("client disconnected during error page render",
				"incident_id", c.ID,
				"error", renderErr,
			)
			return nil
		}
		return fmt.Errorf("render error page for incident %s: %w", c.ID, renderErr)
	}
	return nil
}

// levelFor maps a classification to its log severity. Disconnects are
// expected noise and must not pollute the levels alerting keys on.
func levelFor(c Classification) slog.Level {
	if c == Disconnected {
		return slog.LevelDebug
	}
	return slog.LevelError
}
