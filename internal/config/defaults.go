package config

// Backend identifiers.
const (
	BackendOpenAI     = "openai"
	BackendOpenRouter = "openrouter"
	BackendLMStudio   = "lmstudio"
	BackendLocal      = "local"
)

const (
	defaultAudioDir                 = "tmp"
	defaultWorkDir                  = "~/.cache/subtrans/work"
	defaultHFCacheDir               = "~/.cache/huggingface/hub"
	defaultTranscriptionBackend     = BackendOpenAI
	defaultTranscriptionModel       = "whisper-1"
	defaultTranscriptionLanguage    = "en"
	defaultLocalModel               = "large-v3-turbo"
	defaultVADMethod                = "silero"
	defaultTranslationBackend       = BackendOpenAI
	defaultTranslationTemperature   = 0.3
	defaultTranslationMaxTokens     = 3000
	defaultTranslationTimeout       = 30
	defaultTranslationProgressEvery = 10
	defaultTranslationTitle         = "subtrans"
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

var defaultTranslationBaseURLs = map[string]string{
	BackendOpenAI:     "https://api.openai.com/v1/chat/completions",
	BackendOpenRouter: "https://openrouter.ai/api/v1/chat/completions",
	BackendLMStudio:   "http://localhost:1234/v1/chat/completions",
}

var defaultTranslationModels = map[string]string{
	BackendOpenAI:     "gpt-4o",
	BackendOpenRouter: "openai/gpt-4o",
	BackendLMStudio:   "local-model",
}

// DefaultTranslationBaseURL returns the chat completions endpoint for a backend.
func DefaultTranslationBaseURL(backend string) string {
	return defaultTranslationBaseURLs[backend]
}

// DefaultTranslationModel returns the model used when none is configured.
func DefaultTranslationModel(backend string) string {
	return defaultTranslationModels[backend]
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AudioDir:   defaultAudioDir,
			WorkDir:    defaultWorkDir,
			HFCacheDir: defaultHFCacheDir,
		},
		Transcription: Transcription{
			Backend:    defaultTranscriptionBackend,
			Model:      defaultTranscriptionModel,
			Language:   defaultTranscriptionLanguage,
			LocalModel: defaultLocalModel,
			VADMethod:  defaultVADMethod,
		},
		Translation: Translation{
			Backend:          defaultTranslationBackend,
			Temperature:      defaultTranslationTemperature,
			MaxTokens:        defaultTranslationMaxTokens,
			TimeoutSeconds:   defaultTranslationTimeout,
			ProgressInterval: defaultTranslationProgressEvery,
			Title:            defaultTranslationTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
