package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionHandler(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{
						"content": content,
					},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}
}

func TestClientCompleteSendsRequest(t *testing.T) {
	var captured chatCompletionRequest
	var auth, referer, title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		auth = r.Header.Get("Authorization")
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		completionHandler(t, "  안녕하세요  ")(w, r)
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:      "test",
		BaseURL:     server.URL,
		Model:       "demo-model",
		Referer:     "https://example.test",
		Title:       "subtrans",
		Temperature: 0.3,
		MaxTokens:   3000,
	})
	content, err := client.Complete(context.Background(), "translate", "Hello")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "안녕하세요" {
		t.Fatalf("unexpected content %q", content)
	}
	if auth != "Bearer test" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if referer != "https://example.test" || title != "subtrans" {
		t.Fatalf("unexpected attribution headers %q %q", referer, title)
	}
	if captured.Model != "demo-model" || captured.Temperature != 0.3 || captured.MaxTokens != 3000 {
		t.Fatalf("unexpected request payload %+v", captured)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Content != "Hello" {
		t.Fatalf("unexpected messages %+v", captured.Messages)
	}
}

func TestClientCompleteWithoutAPIKeyOmitsAuthorization(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		completionHandler(t, "ok")(w, r)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "local-model"})
	if _, err := client.Complete(context.Background(), "system", "user"); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if sawAuth {
		t.Fatal("expected no Authorization header without api key")
	}
}

func TestClientCompleteStatusErrorSingleAttempt(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limited"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	_, err := client.Complete(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one attempt, got %d", calls)
	}
}

func TestClientCompleteDeltaContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"delta": map[string]any{
						"content": "델타",
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	content, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "델타" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestClientCompleteLegacyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"finish_reason": "stop",
					"text":          "레거시",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	content, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "레거시" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestClientCompleteEmptyContentHasSnippet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"finish_reason": "content_filter",
					"message": map[string]any{
						"content": "",
						"refusal": "nope",
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	_, err := client.Complete(context.Background(), "system", "user")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "empty content") || !strings.Contains(msg, `refusal="nope"`) || !strings.Contains(msg, "response_snippet=") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if _, err := client.Complete(context.Background(), "system", "user"); err == nil || !strings.Contains(err.Error(), "empty choices") {
		t.Fatalf("expected empty choices error, got %v", err)
	}
}

func TestClientCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "model not found"}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if _, err := client.Complete(context.Background(), "system", "user"); err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestClientCompleteUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if _, err := client.Complete(context.Background(), "system", "user"); err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestClientCompleteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: url, Model: "demo"})
	if _, err := client.Complete(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestClientCompleteRequiresPrompts(t *testing.T) {
	client := NewClient(Config{APIKey: "test", BaseURL: "http://127.0.0.1:0", Model: "demo"})
	if _, err := client.Complete(context.Background(), " ", "user"); err == nil {
		t.Fatal("expected error for empty system prompt")
	}
	if _, err := client.Complete(context.Background(), "system", "\n"); err == nil {
		t.Fatal("expected error for empty user prompt")
	}
}

func TestClientHealthCheck(t *testing.T) {
	server := httptest.NewServer(completionHandler(t, "OK"))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo-model"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientHealthCheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "demo"})
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check to fail")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{Model: " gpt-4o "})
	if client.cfg.BaseURL != defaultBaseURL {
		t.Fatalf("unexpected base url %q", client.cfg.BaseURL)
	}
	if client.Model() != "gpt-4o" {
		t.Fatalf("expected trimmed model, got %q", client.Model())
	}
	if client.timeoutDuration() != DefaultHTTPTimeout() {
		t.Fatalf("unexpected timeout %s", client.timeoutDuration())
	}
	custom := NewClient(Config{TimeoutSeconds: 5})
	if custom.timeoutDuration().Seconds() != 5 {
		t.Fatalf("unexpected custom timeout %s", custom.timeoutDuration())
	}
}
