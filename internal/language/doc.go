// Package language normalizes language codes for the transcription backends
// and names the source and target languages in translation prompts.
package language
