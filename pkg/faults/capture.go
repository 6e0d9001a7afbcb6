package faults

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Capture is a single intercepted fault. It is created fresh per escaped
// error, is immutable after creation, and is discarded when the response
// cycle ends; nothing in this package persists it.
type Capture struct {
	// ID is the correlation identifier shown to the client and written to
	// the log, a UUID v4.
	ID string

	// Err is the raw error as it escaped handler code.
	Err error

	// Class is the severity bucket Classify assigned to Err.
	Class Classification

	// Stack is the serving goroutine's stack at interception time.
	Stack []byte

	// At is the interception timestamp.
	At time.Time
}

// NewCapture builds a Capture for err, assigning a fresh correlation
// identifier and recording the current goroutine's stack.
func NewCapture(err error) *Capture {
	return &Capture{
		ID:    uuid.NewString(),
		Err:   err,
		Class: Classify(err),
		Stack: debug.Stack(),
		At:    time.Now().UTC(),
	}
}

// Recovered converts a value recovered from a panic into an error. Values
// that already are errors pass through unchanged.
func Recovered(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}

// ctxKey is unexported so no other package can collide with the holder.
type ctxKey struct{}

// holder is the request-scoped slot the Interceptor fills in when a fault is
// captured. It exists so middleware that ran before the failure (logging,
// tracing) can observe the capture after the handler returns, the same way
// request attributes work in servlet-style containers. Each request handles
// its holder on a single goroutine, so no locking is needed.
type holder struct {
	capture *Capture
}

// WithHolder returns a context carrying an empty capture slot. The outermost
// middleware that wants to observe captures installs it; installing is
// idempotent, so inner layers can call WithHolder too and share the same
// slot. The slot must sit in the outermost interested layer because context
// values only flow downward.
func WithHolder(ctx context.Context) context.Context {
	if _, ok := ctx.Value(ctxKey{}).(*holder); ok {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, &holder{})
}

// attach stores c in the context's capture slot, if one was installed.
func attach(ctx context.Context, c *Capture) {
	if h, ok := ctx.Value(ctxKey{}).(*holder); ok {
		h.capture = c
	}
}

// FromContext returns the Capture attached to ctx, or nil if no fault was
// intercepted on this request.
func FromContext(ctx context.Context) *Capture {
	if h, ok := ctx.Value(ctxKey{}).(*holder); ok {
		return h.capture
	}
	return nil
}
