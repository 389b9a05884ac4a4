package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrMissingCredential reports that a hosted backend was selected without an API key.
var ErrMissingCredential = errors.New("missing credential")

// Paths contains directory configuration.
type Paths struct {
	AudioDir   string `toml:"audio_dir"`
	WorkDir    string `toml:"work_dir"`
	HFCacheDir string `toml:"hf_cache_dir"`
}

// Transcription contains speech-to-text settings.
type Transcription struct {
	Backend     string `toml:"backend"`
	Model       string `toml:"model"`
	Language    string `toml:"language"`
	APIKey      string `toml:"api_key"`
	BaseURL     string `toml:"base_url"`
	LocalModel  string `toml:"local_model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
}

// Translation contains chat-completion settings for subtitle translation.
type Translation struct {
	Backend          string  `toml:"backend"`
	BaseURL          string  `toml:"base_url"`
	Model            string  `toml:"model"`
	APIKey           string  `toml:"api_key"`
	Temperature      float64 `toml:"temperature"`
	MaxTokens        int     `toml:"max_tokens"`
	TimeoutSeconds   int     `toml:"timeout_seconds"`
	ProgressInterval int     `toml:"progress_interval"`
	Referer          string  `toml:"referer"`
	Title            string  `toml:"title"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subtrans.
//
// Configuration sections by subsystem:
//   - Paths: audio input, work, and model cache directories
//   - Transcription: hosted Whisper or local WhisperX settings
//   - Translation: chat endpoint used for English to Korean translation
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcription Transcription `toml:"transcription"`
	Translation   Translation   `toml:"translation"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subtrans/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and environment fallbacks applied.
//
// A .env file in the working directory is loaded before environment lookups. Variables
// already present in the process environment win over the file.
func Load(path string) (*Config, string, bool, error) {
	loadDotEnv(".env")

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv(path string) {
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return
	}
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load(path)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subtrans.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureWorkDir creates the directory used for intermediate transcription files.
func (c *Config) EnsureWorkDir() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	if err := os.MkdirAll(c.Paths.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.WorkDir, err)
	}
	return nil
}

// RequireTranslationKey fails when the selected translation backend needs an API key
// and none was configured.
func (c *Config) RequireTranslationKey() error {
	if c.Translation.Backend == BackendLMStudio {
		return nil
	}
	if strings.TrimSpace(c.Translation.APIKey) != "" {
		return nil
	}
	env := "OPENAI_API_KEY"
	if c.Translation.Backend == BackendOpenRouter {
		env = "OPENROUTER_API_KEY"
	}
	return fmt.Errorf("%w: translation.api_key is required for the %s backend. Set %s or edit the config file", ErrMissingCredential, c.Translation.Backend, env)
}

// RequireTranscriptionKey fails when the hosted transcription backend is selected
// without an API key.
func (c *Config) RequireTranscriptionKey() error {
	if c.Transcription.Backend != BackendOpenAI {
		return nil
	}
	if strings.TrimSpace(c.Transcription.APIKey) != "" {
		return nil
	}
	return fmt.Errorf("%w: transcription.api_key is required for the openai backend. Set OPENAI_API_KEY or edit the config file", ErrMissingCredential)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
