package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAppRoot(t *testing.T) {
	app := newApp(nil, false)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["service"] != "oopsd" {
		t.Errorf("service = %q, want oopsd", body["service"])
	}
}

func TestAppUnknownPath(t *testing.T) {
	app := newApp(nil, false)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAppDemoEndpointsOnlyWithFlag(t *testing.T) {
	app := newApp(nil, false)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo/panic", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 without --demo", rec.Code)
	}
}
