package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

// AudioExtension is appended to an identifier to locate its audio file.
const AudioExtension = ".m4a"

// ErrAudioNotFound reports that the audio file for an identifier is missing.
var ErrAudioNotFound = errors.New("audio file not found")

// Backend turns an audio file into ordered subtitle entries.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string) ([]subtitles.Entry, error)
}

// Transcriber resolves an identifier to its audio file and renders the
// backend's result as an SRT document.
type Transcriber struct {
	backend  Backend
	audioDir string
	logger   *slog.Logger
}

// New constructs a Transcriber reading audio from audioDir.
func New(backend Backend, audioDir string, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		backend:  backend,
		audioDir: audioDir,
		logger:   logging.NewComponentLogger(logger, "transcriber"),
	}
}

// AudioPath returns <dir>/<id>.m4a. The identifier must be a single path
// element.
func AudioPath(dir, id string) (string, error) {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return "", services.Wrap(services.ErrValidation, "transcribe", "resolve audio", "identifier required", nil)
	case id == "." || id == "..", strings.ContainsAny(id, `/\`):
		return "", services.Wrap(services.ErrValidation, "transcribe", "resolve audio", fmt.Sprintf("identifier %q must be a plain file name", id), nil)
	}
	return filepath.Join(dir, id+AudioExtension), nil
}

// Run transcribes the audio for id and writes the SRT document to w. Nothing
// is written unless the backend succeeds.
func (t *Transcriber) Run(ctx context.Context, id string, w io.Writer) ([]subtitles.Entry, error) {
	audioPath, err := AudioPath(t.audioDir, id)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(audioPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "transcribe", "resolve audio", audioPath, ErrAudioNotFound)
		}
		return nil, services.Wrap(services.ErrNotFound, "transcribe", "stat audio", audioPath, err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "transcribe", "resolve audio", audioPath+" is a directory", ErrAudioNotFound)
	}

	t.logger.Info("transcription started",
		logging.String(logging.FieldEventType, "transcription_start"),
		logging.String("backend", t.backend.Name()),
		logging.String("audio", audioPath),
		logging.Int64("bytes", info.Size()),
	)
	started := time.Now()

	entries, err := t.backend.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	if _, err := io.WriteString(w, subtitles.Render(entries)); err != nil {
		return nil, fmt.Errorf("write srt: %w", err)
	}

	t.logger.Info("transcription completed",
		logging.String(logging.FieldEventType, "transcription_complete"),
		logging.String("backend", t.backend.Name()),
		logging.Int("entries", len(entries)),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)),
	)
	return entries, nil
}
