// Package diagnostics is the side channel that analyzes captured faults for
// known failure signatures.
//
// It implements the faults.Reporter contract: every fault intercepted at the
// request boundary or on a background worker is handed to the Reporter, which
// checks the error text for a known class of failures (typically a missing
// optional dependency: an absent plugin symbol, an unresolvable module, a
// binary not on PATH). Matches are counted as metrics and recorded to a
// SQLite event store so an operator can ask "has anyone hit this before"
// without grepping logs.
//
// The whole package is best effort by contract. Report never blocks past a
// short store timeout, never panics past its boundary (callers additionally
// wrap it in the faults containment guard), and a broken store degrades to
// metrics-only operation.
//
// A scheduled digest summarizes recorded events periodically, so recurring
// signatures show up in the log even when nobody is watching the store.
package diagnostics
