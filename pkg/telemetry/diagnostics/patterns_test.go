package diagnostics

import (
	"errors"
	"fmt"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantPattern string
		wantOK      bool
	}{
		{
			name:        "missing module",
			err:         errors.New(`load handler: cannot find module providing package example.com/widgets`),
			wantPattern: "missing_module",
			wantOK:      true,
		},
		{
			name:        "missing plugin symbol",
			err:         errors.New(`plugin: symbol Handler not found in plugin example.so`),
			wantPattern: "missing_plugin_symbol",
			wantOK:      true,
		},
		{
			name:        "plugin version mismatch",
			err:         errors.New(`plugin.Open("example"): plugin was built with a different version of package internal/abi`),
			wantPattern: "plugin_open_failed",
			wantOK:      true,
		},
		{
			name:        "missing binary",
			err:         errors.New(`exec: "ffmpeg": executable file not found in $PATH`),
			wantPattern: "missing_binary",
			wantOK:      true,
		},
		{
			name:        "missing shared library",
			err:         errors.New(`ffmpeg: error while loading shared libraries: libavcodec.so.58`),
			wantPattern: "missing_shared_library",
			wantOK:      true,
		},
		{
			name:        "wrapped error keeps root message visible",
			err:         fmt.Errorf("render report: %w", errors.New(`exec: "wkhtmltopdf": executable file not found in $PATH`)),
			wantPattern: "missing_binary",
			wantOK:      true,
		},
		{
			name:        "case insensitive",
			err:         errors.New(`Plugin: Symbol Run not found`),
			wantPattern: "missing_plugin_symbol",
			wantOK:      true,
		},
		{
			name:   "unrelated error",
			err:    errors.New("dial tcp 10.0.0.1:443: i/o timeout"),
			wantOK: false,
		},
		{
			name:   "nil error",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Match(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("Match() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && p.Name != tt.wantPattern {
				t.Errorf("Match() pattern = %q, want %q", p.Name, tt.wantPattern)
			}
		})
	}
}

func TestKnownPatternNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range knownPatterns {
		if seen[p.Name] {
			t.Errorf("duplicate pattern name %q", p.Name)
		}
		seen[p.Name] = true
		if len(p.substrings) == 0 {
			t.Errorf("pattern %q has no substrings", p.Name)
		}
	}
}
