// Package transcribe converts an audio file into an SRT document.
//
// A Transcriber resolves an identifier to <audio_dir>/<id>.m4a and delegates
// recognition to a Backend:
//   - Hosted uploads the file to an OpenAI-compatible transcription endpoint
//     (whisper-1 by default) and normalizes the SRT it returns.
//   - Local runs WhisperX through uvx after extracting 16kHz mono audio with
//     ffmpeg, guarded by a per-identifier lock file in the work directory.
//
// Output is written only after the backend succeeds, so a failed run never
// leaves a partial document on stdout.
package transcribe
