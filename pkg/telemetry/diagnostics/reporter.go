package diagnostics

import (
	"context"
	"log/slog"
	"time"

	"github.com/nesteban/oops/pkg/telemetry/metrics"
)

// reportTimeout bounds the store write so the reporter can never hang the
// fire-and-forget contract on a locked database.
const reportTimeout = 2 * time.Second

// Reporter implements faults.Reporter. It checks each captured fault for a
// known failure signature and, on a hit, counts it and records it to the
// event store. Everything here is best effort: a store failure is logged at
// debug and otherwise ignored.
type Reporter struct {
	logger  *slog.Logger
	store   *Store
	metrics *metrics.FaultMetrics
}

// NewReporter wires a reporter. store and m may each be nil, in which case
// the corresponding sink is skipped.
func NewReporter(logger *slog.Logger, store *Store, m *metrics.FaultMetrics) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		logger:  logger.With("component", "diagnostics.reporter"),
		store:   store,
		metrics: m,
	}
}

// Report inspects err for a known signature. It never returns an error and
// never blocks past the store timeout; callers treat it as fire-and-forget.
func (r *Reporter) Report(err error) {
	p, ok := Match(err)
	if !ok {
		return
	}

	r.logger.Debug("known failure signature detected",
		"pattern", p.Name,
		"error", err,
	)

	if r.metrics != nil {
		r.metrics.DiagnosticEvent(p.Name)
	}

	if r.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if storeErr := r.store.Record(ctx, p.Name, err.Error(), time.Now()); storeErr != nil {
			r.logger.Debug("diagnostic event not recorded", "error", storeErr)
		}
	}
}
