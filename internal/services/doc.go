// Package services defines shared utilities consumed by the pipelines and
// their external integrations.
//
// Structured error markers plus the Wrap helper tag failures so the command
// layer can attach a remediation hint (see Hint). Subpackages hold the
// clients for the chat completion endpoint (llm) and the local speech
// recognizer (whisperx).
package services
