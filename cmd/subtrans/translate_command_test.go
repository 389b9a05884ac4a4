package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"subtrans/internal/config"
)

const englishSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,500\nHow are you?\n\n"

func chatServer(t *testing.T, replies map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		reply, ok := replies[req.Messages[1].Content]
		if !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": reply}}},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func lmstudioConfig(baseURL string) string {
	return "[translation]\nbackend = \"lmstudio\"\nbase_url = \"" + baseURL + "/v1/chat/completions\"\nmodel = \"test-model\"\n"
}

func TestTranslateStreamsKoreanSRT(t *testing.T) {
	server := chatServer(t, map[string]string{"Hello": "번역: 안녕하세요"})
	env := setupCLITestEnv(t, lmstudioConfig(server.URL))

	out, logs, err := runCLI(t, env, englishSRT, "--log-format", "json", "translate")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\n안녕하세요\n\n2\n00:00:03,000 --> 00:00:04,500\nHow are you?\n\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
	requireContains(t, logs, `"event_type":"translation_fallback"`)
	requireContains(t, logs, `"event_type":"translation_complete"`)
	if strings.Contains(out, "translation") {
		t.Fatalf("logs leaked into stdout: %q", out)
	}
}

func TestTranslateEmptyInput(t *testing.T) {
	server := chatServer(t, nil)
	env := setupCLITestEnv(t, lmstudioConfig(server.URL))

	out, logs, err := runCLI(t, env, "", "translate")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
	requireContains(t, logs, "translation completed")
	requireContains(t, logs, "processed=0")
}

func TestTranslateModelFlagOverridesConfig(t *testing.T) {
	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		seen = req.Model
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "안녕"}}},
		})
	}))
	defer server.Close()
	env := setupCLITestEnv(t, lmstudioConfig(server.URL))

	if _, _, err := runCLI(t, env, englishSRT, "translate", "--model", "other-model"); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if seen != "other-model" {
		t.Fatalf("expected override model, got %q", seen)
	}
}

func TestTranslateRequiresAPIKey(t *testing.T) {
	env := setupCLITestEnv(t, "[translation]\nbackend = \"openrouter\"\n")

	out, _, err := runCLI(t, env, englishSRT, "translate")
	if !errors.Is(err, config.ErrMissingCredential) {
		t.Fatalf("expected missing credential error, got %v", err)
	}
	requireContains(t, err.Error(), "OPENROUTER_API_KEY")
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestTranslateUsesEnvironmentKey(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": "안녕"}}},
		})
	}))
	defer server.Close()
	env := setupCLITestEnv(t, "[translation]\nbackend = \"openai\"\nbase_url = \""+server.URL+"/v1/chat/completions\"\n")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	if _, _, err := runCLI(t, env, englishSRT, "translate"); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if auth != "Bearer sk-env" {
		t.Fatalf("unexpected authorization header %q", auth)
	}
}
