package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfgPath := writeTestConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "Database:")
	requireContains(t, out, "[OK]")
}

func TestStatusCommand_SourceDown(t *testing.T) {
	cfgPath := writeTestConfig(t, "http://127.0.0.1:1")

	out, err := runCLI(t, "--config", cfgPath, "status")
	if err == nil {
		t.Fatalf("expected failure when source is unreachable, got:\n%s", out)
	}
	if fmt.Sprint(err) == "" {
		t.Fatal("expected failure message")
	}
}
