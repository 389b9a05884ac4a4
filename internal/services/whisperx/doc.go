// Package whisperx runs the WhisperX speech recognizer through uvx.
//
// This package handles:
//   - Audio extraction to 16kHz mono WAV with ffmpeg
//   - WhisperX transcription invocation
//   - Segment loading from the JSON output
//
// Configuration options (model, CUDA, VAD method) are passed via Config.
package whisperx
