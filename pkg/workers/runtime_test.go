package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nesteban/oops/pkg/faults"
)

func TestRuntime(t *testing.T) {
	t.Run("panicking worker invokes the fault handler", func(t *testing.T) {
		reported := make(chan error, 1)
		h := faults.NewBackgroundHandler(nil, faults.ReporterFunc(func(err error) {
			reported <- err
		}))

		rt := New()
		if err := rt.SetFaultHandler(h); err != nil {
			t.Fatalf("SetFaultHandler() error = %v", err)
		}

		rt.Spawn("cleaner", func() {
			panic(errors.New("cleaner bug"))
		})

		select {
		case err := <-reported:
			if err == nil || err.Error() != "cleaner bug" {
				t.Errorf("reported error = %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("fault handler never invoked")
		}
	})

	t.Run("registration after start fails without stopping anything", func(t *testing.T) {
		rt := New()
		done := make(chan struct{})
		rt.Spawn("first", func() { close(done) })
		<-done

		err := rt.SetFaultHandler(faults.NewBackgroundHandler(nil, nil))
		if err == nil {
			t.Fatal("expected registration to be refused after start")
		}

		// The runtime keeps working in the degraded state.
		again := make(chan struct{})
		rt.Spawn("second", func() { close(again) })
		select {
		case <-again:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not run after failed registration")
		}
	})

	t.Run("worker panic without handler does not crash the process", func(t *testing.T) {
		rt := New()
		rt.Spawn("orphan", func() { panic("no handler") })

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rt.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	})

	t.Run("Wait honors context cancellation", func(t *testing.T) {
		rt := New()
		block := make(chan struct{})
		rt.Spawn("stuck", func() { <-block })

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		if err := rt.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Wait() error = %v, want deadline exceeded", err)
		}
		close(block)
	})
}
