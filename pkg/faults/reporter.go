package faults

import "log/slog"

// Reporter is the diagnostic side channel informed of every captured fault.
// Implementations are fire-and-forget: they must not block indefinitely, and
// callers always invoke them through Notify so a panicking reporter can never
// take the request down with it.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) { f(err) }

// MultiReporter fans a fault out to several reporters. Each reporter runs
// inside its own containment boundary, so one panicking reporter does not
// starve the others.
func MultiReporter(logger *slog.Logger, reporters ...Reporter) Reporter {
	return ReporterFunc(func(err error) {
		for _, r := range reporters {
			Notify(logger, r, err)
		}
	})
}

// Protect runs fn and contains any panic, logging it at debug level. It is
// the single containment boundary for best-effort hooks; debug level keeps
// a misbehaving hook from amplifying noise in severity-tagged logs.
func Protect(logger *slog.Logger, name string, fn func()) {
	defer func() {
		if v := recover(); v != nil {
			logger.Debug("contained panic in best-effort hook",
				"hook", name,
				"panic", v,
			)
		}
	}()
	fn()
}

// Notify reports err to r through the containment boundary. A nil reporter
// is a no-op.
func Notify(logger *slog.Logger, r Reporter, err error) {
	if r == nil {
		return
	}
	Protect(logger, "diagnostic_reporter", func() {
		r.Report(err)
	})
}
