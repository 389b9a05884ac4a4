package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/flock"

	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/services/whisperx"
	"subtrans/internal/subtitles"
)

// Recognizer is the subset of the WhisperX service the local backend uses.
type Recognizer interface {
	Model() string
	Transcribe(ctx context.Context, source, workDir, language string) (whisperx.TranscribeResult, error)
}

// Local runs WhisperX on this machine.
type Local struct {
	recognizer Recognizer
	workDir    string
	language   string
	keepFiles  bool
	logger     *slog.Logger
}

// NewLocal builds the local backend. Intermediate files live under workDir.
func NewLocal(recognizer Recognizer, workDir, language string, logger *slog.Logger) *Local {
	return &Local{
		recognizer: recognizer,
		workDir:    workDir,
		language:   language,
		logger:     logging.NewComponentLogger(logger, "transcribe.local"),
	}
}

// KeepIntermediate leaves the per-run WAV and JSON files in place.
func (l *Local) KeepIntermediate(keep bool) {
	l.keepFiles = keep
}

// Name identifies the backend in logs.
func (l *Local) Name() string { return "local" }

// Transcribe extracts audio, runs WhisperX, and converts its segments into
// sequentially numbered entries. A lock file keeps concurrent runs for the
// same identifier apart.
func (l *Local) Transcribe(ctx context.Context, audioPath string) ([]subtitles.Entry, error) {
	if strings.TrimSpace(l.workDir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transcribe", "local", "paths.work_dir must be set", nil)
	}
	if err := os.MkdirAll(l.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe local: ensure work dir: %w", err)
	}

	id := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	lockPath := filepath.Join(l.workDir, id+".lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("transcribe local: acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "transcribe", "local", fmt.Sprintf("another transcription of %q is running (lock %s)", id, lockPath), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			l.logger.Warn("failed to release lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}()

	runDir := filepath.Join(l.workDir, id)
	if !l.keepFiles {
		defer func() {
			if err := os.RemoveAll(runDir); err != nil {
				l.logger.Debug("failed to remove run dir", logging.String("dir", runDir), logging.Error(err))
			}
		}()
	}

	l.logger.Info("running whisperx",
		logging.String("model", l.recognizer.Model()),
		logging.String("run_dir", runDir),
	)
	result, err := l.recognizer.Transcribe(ctx, audioPath, runDir, l.language)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrExternalTool, "transcribe", "local", "whisperx failed", err)
	}
	return SegmentsToEntries(result.Segments), nil
}

// SegmentsToEntries drops segments without text, orders the rest by start
// time, and numbers them from 1. An entry that runs past the start of the
// next one is cut at that start so entries never overlap.
func SegmentsToEntries(segments []whisperx.Segment) []subtitles.Entry {
	kept := make([]whisperx.Segment, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		kept = append(kept, seg)
	}
	slices.SortStableFunc(kept, func(a, b whisperx.Segment) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})

	entries := make([]subtitles.Entry, 0, len(kept))
	for i, seg := range kept {
		start := subtitles.FromSeconds(seg.Start)
		end := subtitles.FromSeconds(seg.End)
		if end < start {
			end = start
		}
		if n := len(entries); n > 0 && entries[n-1].End > start {
			entries[n-1].End = start
		}
		entries = append(entries, subtitles.Entry{
			Index: i + 1,
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	return entries
}
