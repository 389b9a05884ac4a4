package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

// HostedConfig configures the hosted Whisper backend.
type HostedConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
}

// Hosted uploads the audio file to an OpenAI-compatible transcription
// endpoint and asks for an SRT reply.
type Hosted struct {
	client   *openai.Client
	model    string
	language string
	logger   *slog.Logger
}

// NewHosted builds the hosted backend. The API key is required.
func NewHosted(cfg HostedConfig, logger *slog.Logger) (*Hosted, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "hosted", "api key required (set OPENAI_API_KEY)", nil)
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		clientCfg.BaseURL = base
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = openai.Whisper1
	}
	return &Hosted{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		language: language.ToISO2(cfg.Language),
		logger:   logging.NewComponentLogger(logger, "transcribe.hosted"),
	}, nil
}

// Name identifies the backend in logs.
func (h *Hosted) Name() string { return "openai" }

// Transcribe sends one request and normalizes the returned SRT.
func (h *Hosted) Transcribe(ctx context.Context, audioPath string) ([]subtitles.Entry, error) {
	req := openai.AudioRequest{
		Model:    h.model,
		FilePath: audioPath,
		Language: h.language,
		Format:   openai.AudioResponseFormatSRT,
	}
	h.logger.Debug("uploading audio",
		logging.String("model", h.model),
		logging.String("language", h.language),
	)
	resp, err := h.client.CreateTranscription(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return nil, services.Wrap(services.ErrConfiguration, "transcribe", "hosted", "api key rejected", err)
		}
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "hosted", "transcription request failed", err)
	}

	result, err := subtitles.ParseDocument(strings.NewReader(resp.Text))
	if err != nil {
		return nil, fmt.Errorf("transcribe hosted: parse reply: %w", err)
	}
	if result.Skipped > 0 {
		logging.WarnWithContext(h.logger, "dropped malformed subtitle blocks", "transcription_parse",
			logging.Int("skipped", result.Skipped),
			logging.String(logging.FieldImpact, "some speech may be missing from the output"),
		)
	}
	subtitles.Renumber(result.Entries)
	return result.Entries, nil
}
