package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Credentials are not checked here;
// commands that need them call RequireTranslationKey or RequireTranscriptionKey.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case BackendOpenAI, BackendLocal:
	default:
		return fmt.Errorf("transcription.backend: unsupported value %q (want openai or local)", c.Transcription.Backend)
	}
	switch c.Transcription.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method: unsupported value %q (want silero or pyannote)", c.Transcription.VADMethod)
	}
	if c.Transcription.Backend == BackendLocal && c.Transcription.VADMethod == "pyannote" && c.Transcription.HFToken == "" {
		return errors.New("transcription.hf_token is required for vad_method \"pyannote\" (set HF_TOKEN or use \"silero\")")
	}
	return nil
}

func (c *Config) validateTranslation() error {
	switch c.Translation.Backend {
	case BackendOpenAI, BackendOpenRouter, BackendLMStudio:
	default:
		return fmt.Errorf("translation.backend: unsupported value %q (want openai, openrouter or lmstudio)", c.Translation.Backend)
	}
	if c.Translation.BaseURL == "" {
		return errors.New("translation.base_url must be set")
	}
	if c.Translation.Temperature < 0 || c.Translation.Temperature > 2 {
		return errors.New("translation.temperature must be between 0 and 2")
	}
	return ensurePositiveMap(map[string]int{
		"translation.max_tokens":        c.Translation.MaxTokens,
		"translation.timeout_seconds":   c.Translation.TimeoutSeconds,
		"translation.progress_interval": c.Translation.ProgressInterval,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
