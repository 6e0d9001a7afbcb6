package faults

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// ResponseWriter is the response handle the fault path writes to. Committed
// reports whether the status line and headers have already been sent to the
// client; once it returns true, nothing in this package writes to the body
// again.
type ResponseWriter interface {
	http.ResponseWriter
	Committed() bool
}

// Renderer produces the user-facing error page for a captured fault. Render
// is attempted exactly once per capture and is never retried.
type Renderer interface {
	Render(w ResponseWriter, r *http.Request, c *Capture) error
}

// PageRenderer writes the structured JSON error page. It carries the one
// piece of policy this package exposes as configuration: whether the page
// may include a stack trace. The flag is atomic so a config watcher can flip
// it at runtime.
type PageRenderer struct {
	exposeStack atomic.Bool
}

// NewPageRenderer creates a renderer. exposeStack should stay false outside
// development; stacks leak internals to untrusted clients.
func NewPageRenderer(exposeStack bool) *PageRenderer {
	p := &PageRenderer{}
	p.exposeStack.Store(exposeStack)
	return p
}

// SetExposeStack updates the stack-trace policy at runtime.
func (p *PageRenderer) SetExposeStack(v bool) {
	p.exposeStack.Store(v)
}

// errorBody is the wire shape of the error page.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	IncidentID string `json:"incident_id"`
	Stack      string `json:"stack,omitempty"`
}

// IncidentIDHeader carries the correlation identifier on the error response
// so clients can report it without parsing the body.
const IncidentIDHeader = "X-Incident-ID"

// Render writes the error page for c. The committed state is re-checked here
// because it can change between interception and rendering in streaming
// scenarios; a committed response makes Render a no-op.
func (p *PageRenderer) Render(w ResponseWriter, r *http.Request, c *Capture) error {
	if w.Committed() {
		return nil
	}

	detail := errorDetail{
		Message:    "The server failed to process this request.",
		Type:       "server_error",
		Code:       "uncaught_fault",
		IncidentID: c.ID,
	}
	if p.exposeStack.Load() {
		detail.Message = c.Err.Error()
		detail.Stack = string(c.Stack)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IncidentIDHeader, c.ID)
	w.WriteHeader(http.StatusInternalServerError)

	if err := json.NewEncoder(w).Encode(errorBody{Error: detail}); err != nil {
		return fmt.Errorf("write error page: %w", err)
	}
	return nil
}
