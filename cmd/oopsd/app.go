package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nesteban/oops/pkg/faults"
)

// newApp builds the application handler mounted under the fault pipeline.
// The root endpoint reports service info. With demo enabled, endpoints
// that fail on purpose are mounted so the pipeline can be exercised
// end to end from curl.
func newApp(background *faults.BackgroundHandler, demo bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"service": "oopsd",
			"version": Version,
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	if demo {
		// Panics inside a request handler, producing a server_fault page
		// with an incident id.
		mux.HandleFunc("/demo/panic", func(w http.ResponseWriter, r *http.Request) {
			panic("demo panic from /demo/panic")
		})

		// Fails with a known failure signature, so the diagnostics side
		// channel records it.
		mux.HandleFunc("/demo/missing", func(w http.ResponseWriter, r *http.Request) {
			panic(errors.New(`exec: "nonexistent-tool": executable file not found in $PATH`))
		})

		// Kills a background goroutine, exercising the worker fault path
		// while the request itself succeeds.
		mux.HandleFunc("/demo/background", func(w http.ResponseWriter, r *http.Request) {
			background.Go("demo-worker", func() {
				panic("demo panic from background worker")
			})
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte("background worker spawned\n"))
		})
	}

	return mux
}
