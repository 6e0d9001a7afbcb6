// Package workers runs background goroutines under a configured fault
// handler, so that a worker dying from an uncaught panic is logged instead of
// vanishing silently.
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nesteban/oops/pkg/faults"
)

// Runtime owns the background goroutines of the process. It holds a single
// fault handler reference, set once during startup configuration, instead of
// relying on ambient global state.
type Runtime struct {
	mu      sync.Mutex
	handler *faults.BackgroundHandler
	started bool
	wg      sync.WaitGroup
}

// New creates an empty runtime with no fault handler installed.
func New() *Runtime {
	return &Runtime{}
}

// SetFaultHandler installs h as the handler for uncaught worker faults. It
// must be called before the first worker is spawned; after that point the
// installation is refused so in-flight workers keep a consistent handler.
//
// A failed installation is a degraded-diagnostics condition, not a fatal
// one: callers log it at high severity and continue starting up.
func (r *Runtime) SetFaultHandler(h *faults.BackgroundHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return fmt.Errorf("worker runtime already started, fault handler not installed")
	}
	r.handler = h
	return nil
}

// Spawn runs fn on a new goroutine. If fn panics, the configured fault
// handler is invoked on the dying goroutine; with no handler installed, a
// minimal log line is the only trace left.
func (r *Runtime) Spawn(name string, fn func()) {
	r.mu.Lock()
	r.started = true
	handler := r.handler
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if handler != nil {
				handler.Handle(name, v)
				return
			}
			slog.Error("background worker died with no fault handler installed",
				"worker", name,
				"panic", v,
			)
		}()
		fn()
	}()
}

// Wait blocks until all spawned workers have returned or ctx is done.
func (r *Runtime) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
