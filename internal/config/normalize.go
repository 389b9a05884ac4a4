package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeTranslation()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		c.Paths.AudioDir = defaultAudioDir
	}
	if c.Paths.AudioDir, err = expandPath(strings.TrimSpace(c.Paths.AudioDir)); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if value, ok := os.LookupEnv("HF_HUB_CACHE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.HFCacheDir = strings.TrimSpace(value)
	} else if value, ok := os.LookupEnv("HF_HOME"); ok && strings.TrimSpace(value) != "" {
		c.Paths.HFCacheDir = filepath.Join(strings.TrimSpace(value), "hub")
	}
	if strings.TrimSpace(c.Paths.HFCacheDir) == "" {
		c.Paths.HFCacheDir = defaultHFCacheDir
	}
	if c.Paths.HFCacheDir, err = expandPath(strings.TrimSpace(c.Paths.HFCacheDir)); err != nil {
		return fmt.Errorf("paths.hf_cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	t.Backend = strings.ToLower(strings.TrimSpace(t.Backend))
	if t.Backend == "" {
		t.Backend = defaultTranscriptionBackend
	}
	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" {
		t.Model = defaultTranscriptionModel
	}
	t.Language = strings.ToLower(strings.TrimSpace(t.Language))
	if t.Language == "" {
		t.Language = defaultTranscriptionLanguage
	}
	t.BaseURL = strings.TrimSpace(t.BaseURL)
	t.APIKey = strings.TrimSpace(t.APIKey)
	if t.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			t.APIKey = strings.TrimSpace(value)
		}
	}
	t.LocalModel = strings.TrimSpace(t.LocalModel)
	if t.LocalModel == "" {
		t.LocalModel = defaultLocalModel
	}
	t.VADMethod = strings.ToLower(strings.TrimSpace(t.VADMethod))
	if t.VADMethod == "" {
		t.VADMethod = defaultVADMethod
	}
	t.HFToken = strings.TrimSpace(t.HFToken)
	if t.HFToken == "" {
		if value, ok := os.LookupEnv("HUGGING_FACE_HUB_TOKEN"); ok {
			t.HFToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			t.HFToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeTranslation() {
	t := &c.Translation
	t.Backend = strings.ToLower(strings.TrimSpace(t.Backend))
	if t.Backend == "" {
		t.Backend = defaultTranslationBackend
	}
	t.BaseURL = strings.TrimSpace(t.BaseURL)
	if t.BaseURL == "" {
		t.BaseURL = DefaultTranslationBaseURL(t.Backend)
	}
	// TRANSLATION_MODEL is a per-run override and wins over the file.
	if value, ok := os.LookupEnv("TRANSLATION_MODEL"); ok && strings.TrimSpace(value) != "" {
		t.Model = value
	}
	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" {
		t.Model = DefaultTranslationModel(t.Backend)
	}
	t.APIKey = strings.TrimSpace(t.APIKey)
	if t.APIKey == "" {
		if value, ok := os.LookupEnv(translationKeyEnv(t.Backend)); ok {
			t.APIKey = strings.TrimSpace(value)
		}
	}
	if t.MaxTokens <= 0 {
		t.MaxTokens = defaultTranslationMaxTokens
	}
	if t.TimeoutSeconds <= 0 {
		t.TimeoutSeconds = defaultTranslationTimeout
	}
	if t.ProgressInterval <= 0 {
		t.ProgressInterval = defaultTranslationProgressEvery
	}
	t.Referer = strings.TrimSpace(t.Referer)
	t.Title = strings.TrimSpace(t.Title)
}

func translationKeyEnv(backend string) string {
	switch backend {
	case BackendOpenRouter:
		return "OPENROUTER_API_KEY"
	case BackendLMStudio:
		return "LMSTUDIO_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
