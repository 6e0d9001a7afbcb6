package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nesteban/oops/pkg/faults"
)

// Digest periodically summarizes recorded diagnostic events into a single
// log line, so recurring failure signatures surface without anyone querying
// the store. It runs on a cron schedule (e.g. "0 * * * *" for hourly).
type Digest struct {
	store    *Store
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	lastRun time.Time
	running bool
}

// NewDigest creates a digest job. handler guards the scheduled runs the same
// way it guards any other background worker; it may be nil, in which case
// cron's goroutines run unguarded.
func NewDigest(store *Store, schedule string, handler *faults.BackgroundHandler) *Digest {
	opts := []cron.Option{}
	if handler != nil {
		opts = append(opts, cron.WithChain(recoverWith(handler)))
	}
	return &Digest{
		store:    store,
		schedule: schedule,
		cron:     cron.New(opts...),
		logger:   slog.Default().With("component", "diagnostics.digest"),
		lastRun:  time.Now(),
	}
}

// recoverWith is a cron job wrapper routing job panics to the background
// fault handler instead of cron's own logger.
func recoverWith(handler *faults.BackgroundHandler) cron.JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			defer func() {
				if v := recover(); v != nil {
					handler.Handle("diagnostics.digest", v)
				}
			}()
			j.Run()
		})
	}
}

// Start begins scheduled digest runs. An empty schedule disables the digest
// without error.
func (d *Digest) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.schedule == "" {
		d.logger.Info("digest schedule not configured, skipping")
		return nil
	}

	if _, err := cron.ParseStandard(d.schedule); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", d.schedule, err)
	}

	if _, err := d.cron.AddFunc(d.schedule, d.run); err != nil {
		return fmt.Errorf("schedule digest: %w", err)
	}

	d.cron.Start()
	d.running = true
	d.logger.Info("diagnostics digest started", "schedule", d.schedule)

	go func() {
		<-ctx.Done()
		d.Stop()
	}()

	return nil
}

// run emits one digest line covering events since the previous run.
func (d *Digest) run() {
	d.mu.Lock()
	since := d.lastRun
	d.lastRun = time.Now()
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := d.store.CountsSince(ctx, since)
	if err != nil {
		d.logger.Warn("digest query failed", "error", err)
		return
	}
	if len(counts) == 0 {
		d.logger.Debug("no diagnostic events since last digest", "since", since)
		return
	}

	attrs := []any{"since", since}
	for pattern, n := range counts {
		attrs = append(attrs, pattern, n)
	}
	d.logger.Info("diagnostics digest", attrs...)
}

// Stop halts scheduled runs and waits for an in-flight run to finish.
func (d *Digest) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	// Release the lock before draining: an in-flight run takes it briefly
	// and must be able to finish.
	d.mu.Unlock()

	<-d.cron.Stop().Done()
	d.logger.Info("diagnostics digest stopped")
}
