package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RecommendedModels lists translation-friendly models in display order.
var RecommendedModels = []string{
	"openai/gpt-4o",
	"anthropic/claude-3-opus",
	"anthropic/claude-3-sonnet",
	"google/gemini-1.5-pro",
	"google/gemini-1.5-flash",
	"mistralai/mistral-large",
	"meta-llama/llama-3-70b-instruct",
}

// Model describes one entry of the models endpoint.
type Model struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	ContextLength int     `json:"context_length"`
	Pricing       Pricing `json:"pricing"`
	OwnedBy       string  `json:"owned_by"`
}

// Pricing carries per-token prices. Providers encode them as strings or
// numbers.
type Pricing struct {
	Prompt     json.Number `json:"prompt"`
	Completion json.Number `json:"completion"`
}

// PerToken returns the combined prompt and completion price, or zero when
// the provider does not publish one.
func (p Pricing) PerToken() float64 {
	prompt, _ := strconv.ParseFloat(p.Prompt.String(), 64)
	completion, _ := strconv.ParseFloat(p.Completion.String(), 64)
	if prompt < 0 || completion < 0 {
		return 0
	}
	return prompt + completion
}

type modelsResponse struct {
	Data  []Model   `json:"data"`
	Error *apiError `json:"error"`
}

// ModelsURL derives the models endpoint from a chat completions URL.
func ModelsURL(baseURL string) string {
	root := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	root = strings.TrimSuffix(root, completionsSuffix)
	return root + "/models"
}

// ListModels fetches the models the endpoint serves.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	body, err := c.do(ctx, http.MethodGet, ModelsURL(c.cfg.BaseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("llm models: %w", err)
	}
	var parsed modelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("llm models: decode response: %w (payload snippet: %s)", err, summarizePayloadSnippet(string(body)))
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("llm models: api error: %s", strings.TrimSpace(parsed.Error.Message))
	}
	return parsed.Data, nil
}

// DefaultModels is shown when the endpoint cannot be reached.
func DefaultModels() []Model {
	return []Model{
		{ID: "openai/gpt-4o", Name: "OpenAI - GPT-4o", Description: "OpenAI's latest multimodal model"},
		{ID: "anthropic/claude-3-sonnet", Name: "Anthropic - Claude 3 Sonnet", Description: "Anthropic's fast and efficient model"},
		{ID: "google/gemini-1.5-flash", Name: "Google - Gemini 1.5 Flash", Description: "Google's low-latency model"},
	}
}

// DisplayName renders "Provider - model" from an id such as
// "openai/gpt-4o".
func DisplayName(id string) string {
	provider, name, ok := strings.Cut(id, "/")
	if !ok || name == "" {
		name = id
		if !ok {
			provider = "unknown"
		}
	}
	if provider == "" {
		provider = "unknown"
	}
	return cases.Title(language.English).String(provider) + " - " + name
}

// Describe combines the model description with its context window and price.
func Describe(m Model) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(m.Description))
	if m.ContextLength > 0 {
		fmt.Fprintf(&b, " - up to %d tokens", m.ContextLength)
	}
	if price := m.Pricing.PerToken(); price > 0 {
		fmt.Fprintf(&b, " (%s$ per token)", strconv.FormatFloat(price, 'g', -1, 64))
	}
	return strings.TrimSpace(b.String())
}

// FormatModels assigns display names and descriptions, then orders the list
// with recommended models first in recommended order and everything else by
// display name.
func FormatModels(models []Model) []Model {
	formatted := make([]Model, 0, len(models))
	for _, m := range models {
		id := m.ID
		if !strings.Contains(id, "/") && strings.TrimSpace(m.OwnedBy) != "" {
			id = strings.TrimSpace(m.OwnedBy) + "/" + id
		}
		m.Name = DisplayName(id)
		m.Description = Describe(m)
		formatted = append(formatted, m)
	}
	slices.SortStableFunc(formatted, func(a, b Model) int {
		ai := slices.Index(RecommendedModels, a.ID)
		bi := slices.Index(RecommendedModels, b.ID)
		switch {
		case ai >= 0 && bi >= 0:
			return ai - bi
		case ai >= 0:
			return -1
		case bi >= 0:
			return 1
		default:
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	})
	return formatted
}
