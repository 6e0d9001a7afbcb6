// Package middleware provides the HTTP middleware chain around the fault
// interception pipeline.
//
// # Middleware Chain
//
// Middleware is applied in a fixed order (innermost to outermost):
//
//	handler = RequestID(Logging(Recovery(app)))
//
//  1. Recovery: convert escaped panics into interceptor calls. It wraps the
//     application directly so that by the time the outer layers resume, the
//     fault has been handled and its capture is in the request context.
//  2. Logging: log request completion, surfacing any fault capture left by
//     the recovery layer below it
//  3. RequestID: generate and propagate a per-request id, outermost so the
//     logging layer can read it from the context
//
// # Recovery
//
// RecoveryMiddleware is the inbound hook the hosting server registers for
// "exception escaped normal processing". It wraps the response writer with
// commit tracking, installs the capture slot in the request context, and on
// panic hands (response, request, error) to the faults.Interceptor. A render
// failure that is not a disconnect is re-panicked so net/http's
// connection-level fault logging observes it; nothing better can be done for
// that request.
//
// # Logging
//
// LoggingMiddleware runs upstream of handler code, so after the handler
// returns it can read the fault capture from the request context and put the
// incident id on the completion log line. That is how operators get from an
// access log entry to the fault record.
package middleware
