package diagnostics

import (
	"context"
	"testing"
	"time"
)

func TestDigestStartStop(t *testing.T) {
	s := testStore(t)

	t.Run("empty schedule disables digest", func(t *testing.T) {
		d := NewDigest(s, "", nil)
		if err := d.Start(context.Background()); err != nil {
			t.Fatalf("Start() error: %v", err)
		}
		// Stop on a never-started digest is a no-op.
		d.Stop()
	})

	t.Run("invalid schedule rejected", func(t *testing.T) {
		d := NewDigest(s, "not a schedule", nil)
		if err := d.Start(context.Background()); err == nil {
			t.Fatal("expected error for invalid schedule")
		}
	})

	t.Run("starts and stops cleanly", func(t *testing.T) {
		d := NewDigest(s, "* * * * *", nil)
		if err := d.Start(context.Background()); err != nil {
			t.Fatalf("Start() error: %v", err)
		}
		d.Stop()
		d.Stop()
	})

	t.Run("context cancellation stops digest", func(t *testing.T) {
		d := NewDigest(s, "* * * * *", nil)
		ctx, cancel := context.WithCancel(context.Background())
		if err := d.Start(ctx); err != nil {
			t.Fatalf("Start() error: %v", err)
		}
		cancel()

		deadline := time.After(2 * time.Second)
		for {
			d.mu.Lock()
			running := d.running
			d.mu.Unlock()
			if !running {
				break
			}
			select {
			case <-deadline:
				t.Fatal("digest still running after context cancellation")
			case <-time.After(10 * time.Millisecond):
			}
		}
	})
}

func TestDigestRunAdvancesWindow(t *testing.T) {
	s := testStore(t)
	d := NewDigest(s, "* * * * *", nil)

	if err := s.Record(context.Background(), "missing_module", "x", time.Now()); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	before := d.lastRun
	d.run()
	if !d.lastRun.After(before) {
		t.Error("run() did not advance the digest window")
	}

	// A second run covers only the new window, which is empty. It must not
	// fail or touch lastRun bookkeeping incorrectly.
	second := d.lastRun
	d.run()
	if !d.lastRun.After(second) {
		t.Error("second run() did not advance the digest window")
	}
}

func TestDigestRunSurvivesClosedStore(t *testing.T) {
	s := testStore(t)
	s.Close()
	d := NewDigest(s, "* * * * *", nil)

	// The query fails; run logs and returns.
	d.run()
}
