// Package telemetry groups the observability subsystems: structured logging,
// Prometheus metrics, and the diagnostics side channel that inspects captured
// faults for known failure signatures.
//
// # Components
//
//   - logging: log/slog setup with level and format parsing
//   - metrics: Prometheus counters for the fault pipeline
//   - diagnostics: best-effort fault analysis, event store, scheduled digest
//
// Each component is wired independently at startup; none of them is required
// for the fault pipeline to function, and all of them degrade to no-ops when
// disabled in configuration.
package telemetry
