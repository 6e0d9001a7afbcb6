// Package faults intercepts errors that escape normal request handling and
// turns them into a safe, loggable, user-facing response.
//
// # Overview
//
// The package covers the two places an uncaught error can surface in an HTTP
// application server:
//
//   - On a serving goroutine: the Interceptor is handed the request, the
//     response handle, and the escaped error. It classifies the error,
//     assigns a correlation identifier, logs, notifies the diagnostic side
//     channel, and renders a structured error page if the response has not
//     been committed yet.
//   - On a background goroutine: the BackgroundHandler is the terminal
//     recover for workers outside the request pipeline. Its only job is to
//     log before the goroutine dies, and it must never panic itself.
//
// # Classification
//
// Classify distinguishes client disconnects from genuine server faults by
// walking the error's cause chain. Disconnects are expected noise (the client
// closed the tab mid-request) and are logged at debug level; everything else
// is a ServerFault and is loud.
//
// # Interception Order
//
// For a single request the Interceptor always runs the same sequence:
// committed check, log, diagnostics, render. Each step's safety depends on
// the previous one, so the order is fixed:
//
//  1. If the response is already committed, log and stop. Writing a body to
//     a committed response corrupts the stream, and this guard is what keeps
//     a second failure during body writing from cascading.
//  2. Generate a fresh correlation identifier (UUID v4) and attach the
//     Capture to the request context for downstream rendering and upstream
//     logging middleware.
//  3. Log the error with the identifier, at a severity derived from the
//     classification.
//  4. Notify the Reporter. Reporter failures are contained and never reach
//     the request.
//  5. Render the error page once, unless the fault is a disconnect (there is
//     nobody left to render for). A render failure that is itself a
//     disconnect is swallowed; any other render failure is returned to the
//     hosting layer, since no better recovery exists at that point.
//
// # Error Page
//
// The rendered page is a JSON body with a stable shape:
//
//	{
//	  "error": {
//	    "message": "The server failed to process this request.",
//	    "type": "server_error",
//	    "code": "uncaught_fault",
//	    "incident_id": "550e8400-e29b-41d4-a716-446655440000"
//	  }
//	}
//
// Stack traces are never included unless the renderer's expose-stack flag is
// enabled. Operators correlate the incident id against the server log.
//
// # Thread Safety
//
// There is no shared mutable state between invocations: every Capture is
// local to one request. All types in this package are safe for concurrent
// use.
package faults
