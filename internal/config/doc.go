// Package config loads, normalizes, and validates subtrans configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a working-directory .env file, and
// honours environment fallbacks such as OPENAI_API_KEY, OPENROUTER_API_KEY,
// and the TRANSLATION_MODEL override. Backend selection for transcription
// (hosted or local) and translation (OpenAI, OpenRouter, LM Studio) lives here
// so the pipelines only ever see resolved endpoints and models.
package config
