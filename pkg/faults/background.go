package faults

import (
	"log/slog"
	"runtime/debug"
)

// BackgroundHandler is the process-wide fallback for faults on goroutines
// outside the request pipeline. By the time it runs the goroutine is already
// dead; its sole responsibility is to log, loudly, so the failure does not
// disappear silently.
//
// The handler is injected where workers are spawned rather than held as
// ambient global state; pkg/workers holds one configured reference set once
// during startup.
type BackgroundHandler struct {
	logger   *slog.Logger
	reporter Reporter
}

// NewBackgroundHandler wires a handler. reporter may be nil.
func NewBackgroundHandler(logger *slog.Logger, reporter Reporter) *BackgroundHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackgroundHandler{logger: logger, reporter: reporter}
}

// Handle records the death of a background worker. v is the recovered panic
// value. Handle never panics: a throwing fault handler is equivalent to no
// fault handler, so the outer recover here stays even if logging itself
// fails (as it can under memory exhaustion).
func (h *BackgroundHandler) Handle(worker string, v any) {
	defer func() {
		// Nothing left to do if even logging blew up.
		_ = recover()
	}()

	err := Recovered(v)
	h.logger.Error("background worker died from an uncaught fault, this is usually a bug",
		"worker", worker,
		"error", err,
		"stack", string(debug.Stack()),
	)
	Notify(h.logger, h.reporter, err)
}

// Go runs fn on a new goroutine with this handler as the terminal recover.
// It is the spawn path for fire-and-forget work that must not be able to
// kill the process.
func (h *BackgroundHandler) Go(worker string, fn func()) {
	go func() {
		defer func() {
			if v := recover(); v != nil {
				h.Handle(worker, v)
			}
		}()
		fn()
	}()
}
