// Oopsd is an HTTP server built around a fault interception pipeline.
//
// Every request handler runs inside a recovery layer that classifies
// failures, assigns each one a correlation id, logs it, reports it to a
// diagnostics side channel, and renders a JSON error page. Goroutines
// spawned through the worker runtime get the same treatment.
//
// Usage:
//
//	# Start server with default configuration
//	oopsd run
//
//	# Start with custom configuration file
//	oopsd run --config /path/to/config.yaml
//
//	# Show version information
//	oopsd version
package main

func main() {
	Execute()
}
