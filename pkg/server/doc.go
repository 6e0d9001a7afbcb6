// Package server provides the HTTP server wiring around the fault pipeline.
//
// The server owns lifecycle management (start, graceful shutdown, signal
// handling) and assembles the middleware chain so that every registered
// application handler is covered by fault interception. It also exposes the
// operational endpoints:
//
//   - GET /healthz  - liveness probe
//   - GET /metrics  - Prometheus scrape endpoint (when metrics are enabled)
//
// # Middleware Chain
//
// Requests pass through, outermost first:
//
//  1. RequestID: per-request correlation id
//  2. Logging: completion log line, surfaces fault captures
//  3. Recovery: fault interception around the application handler
//
// # TLS Support
//
// TLS 1.3 is enforced when enabled:
//
//	server:
//	  tls:
//	    enabled: true
//	    cert_file: "/path/to/cert.pem"
//	    key_file: "/path/to/key.pem"
package server
