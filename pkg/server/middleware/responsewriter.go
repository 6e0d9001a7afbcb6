package middleware

import "net/http"

// responseWriter wraps http.ResponseWriter and tracks whether the response
// has been committed, i.e. whether the status line and headers have gone out.
// It implements faults.ResponseWriter: once committed, the fault path is not
// allowed to touch the body again.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	committed  bool
}

// newResponseWriter creates a new response writer wrapper.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default to 200
	}
}

// WriteHeader captures the status code and marks the response committed.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.committed {
		rw.statusCode = code
		rw.committed = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures WriteHeader is called if not already done.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.committed {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Committed reports whether the status line and headers have been sent.
func (rw *responseWriter) Committed() bool {
	return rw.committed
}

// Status returns the status code that was written, or 200 if none was.
func (rw *responseWriter) Status() int {
	return rw.statusCode
}

// Flush passes through to the underlying writer when it supports streaming.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		rw.committed = true
		f.Flush()
	}
}
