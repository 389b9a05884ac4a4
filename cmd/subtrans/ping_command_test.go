package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"subtrans/internal/services"
)

func TestPingReportsModel(t *testing.T) {
	server := chatServer(t, map[string]string{"ping": "OK"})
	env := setupCLITestEnv(t, lmstudioConfig(server.URL))

	out, _, err := runCLI(t, env, "", "ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	requireContains(t, out, "lmstudio model test-model responded")
}

func TestPingFailureIsConfigurationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()
	env := setupCLITestEnv(t, lmstudioConfig(server.URL))

	_, _, err := runCLI(t, env, "", "ping")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
