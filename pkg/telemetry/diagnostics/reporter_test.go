package diagnostics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nesteban/oops/pkg/telemetry/metrics"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReporterRecordsKnownSignature(t *testing.T) {
	s := testStore(t)
	m := metrics.New(metrics.Config{}, nil)
	r := NewReporter(quietLogger(), s, m)

	r.Report(errors.New(`exec: "ffmpeg": executable file not found in $PATH`))

	counts, err := s.CountsSince(context.Background(), time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountsSince() error: %v", err)
	}
	if counts["missing_binary"] != 1 {
		t.Errorf("missing_binary count = %d, want 1", counts["missing_binary"])
	}

	mf, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range mf {
		if f.GetName() == "oops_diagnostic_events_total" {
			found = true
		}
	}
	if !found {
		t.Error("oops_diagnostic_events_total not registered after report")
	}
}

func TestReporterIgnoresUnknownErrors(t *testing.T) {
	s := testStore(t)
	r := NewReporter(quietLogger(), s, nil)

	r.Report(errors.New("dial tcp 10.0.0.1:443: i/o timeout"))
	r.Report(nil)

	counts, err := s.CountsSince(context.Background(), time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("CountsSince() error: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no recorded events, got %v", counts)
	}
}

func TestReporterNilSinks(t *testing.T) {
	r := NewReporter(nil, nil, nil)

	// Nothing to assert beyond not panicking: both sinks are absent.
	r.Report(errors.New("plugin: symbol Handler not found"))
}

func TestReporterSurvivesClosedStore(t *testing.T) {
	s := testStore(t)
	s.Close()
	r := NewReporter(quietLogger(), s, nil)

	// The store write fails; Report must still return normally.
	r.Report(errors.New("plugin: symbol Handler not found"))
}

func TestReporterMetricCount(t *testing.T) {
	m := metrics.New(metrics.Config{}, nil)
	r := NewReporter(quietLogger(), nil, m)

	r.Report(errors.New("cannot find module providing package a"))
	r.Report(errors.New("cannot find module providing package b"))

	mf, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	var got float64
	for _, f := range mf {
		if f.GetName() != "oops_diagnostic_events_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "pattern" && l.GetValue() == "missing_module" {
					got = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if got != 2 {
		t.Errorf("missing_module metric = %v, want 2", got)
	}
}
