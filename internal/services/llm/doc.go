// Package llm provides a client for OpenAI-compatible chat completion
// endpoints (OpenAI, OpenRouter, LM Studio).
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send system/user prompts, receive the reply text.
// Client.ListModels: fetch the models the endpoint serves.
// Client.HealthCheck: verify API key and model availability.
// FormatModels: name and order a model list for display.
//
// # Requests
//
// Every call performs exactly one HTTP attempt. Callers that need a fallback
// on failure handle it themselves. The Authorization header is only sent when
// an API key is configured, so local servers without authentication work.
// Referer and Title map to OpenRouter's HTTP-Referer and X-Title headers.
//
// # Responses
//
// Reply text is taken from the first choice carrying content, accepting the
// message, delta, and legacy text shapes. Non-2xx responses surface as
// *StatusError.
package llm
