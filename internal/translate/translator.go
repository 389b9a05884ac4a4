package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/subtitles"
)

// DefaultProgressInterval is how many entries pass between progress notices.
const DefaultProgressInterval = 10

// Completer sends one prompt pair to a chat endpoint.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Summary counts what happened to each entry of a run.
type Summary struct {
	Total      int
	Processed  int
	Translated int
	Fallback   int
	Blank      int
	Elapsed    time.Duration
}

type flusher interface {
	Flush() error
}

// Translator replaces each entry's text with its Korean translation and
// streams the result entry by entry.
type Translator struct {
	completer     Completer
	logger        *slog.Logger
	progressEvery int
}

// New constructs a Translator. A non-positive progressEvery uses
// DefaultProgressInterval.
func New(completer Completer, logger *slog.Logger, progressEvery int) *Translator {
	if progressEvery <= 0 {
		progressEvery = DefaultProgressInterval
	}
	return &Translator{
		completer:     completer,
		logger:        logging.NewComponentLogger(logger, "translator"),
		progressEvery: progressEvery,
	}
}

// Run translates entries in order, writing each one to w as soon as it is
// done and flushing w when it supports Flush. A failed request keeps the
// original text for that entry and processing moves on. Only a write error
// or context cancellation stops the run early.
func (t *Translator) Run(ctx context.Context, entries []subtitles.Entry, w io.Writer) (Summary, error) {
	summary := Summary{Total: len(entries)}
	started := time.Now()

	t.logger.Info("translation started",
		logging.String(logging.FieldEventType, "translation_start"),
		logging.Int("entries", len(entries)),
	)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(started)
			return summary, err
		}

		out := entry
		switch text, err := t.translateEntry(ctx, entry); {
		case err == nil && text == "":
			summary.Blank++
		case err == nil:
			out.Text = text
			summary.Translated++
		case ctx.Err() != nil:
			summary.Elapsed = time.Since(started)
			return summary, ctx.Err()
		default:
			summary.Fallback++
			logging.WarnWithContext(t.logger, "translation failed; keeping original text", "translation_fallback",
				logging.Int(logging.FieldEntryIndex, entry.Index),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the translation endpoint, model, and API key"),
				logging.String(logging.FieldImpact, "entry left in English"),
			)
		}

		if err := subtitles.WriteEntry(w, out); err != nil {
			summary.Elapsed = time.Since(started)
			return summary, fmt.Errorf("write entry %d: %w", entry.Index, err)
		}
		if f, ok := w.(flusher); ok {
			if err := f.Flush(); err != nil {
				summary.Elapsed = time.Since(started)
				return summary, fmt.Errorf("flush entry %d: %w", entry.Index, err)
			}
		}
		summary.Processed++

		if summary.Processed%t.progressEvery == 0 && summary.Processed < summary.Total {
			t.logger.Info("translation progress",
				logging.String(logging.FieldEventType, "translation_progress"),
				logging.Int("processed", summary.Processed),
				logging.Int("total", summary.Total),
			)
		}
	}

	summary.Elapsed = time.Since(started)
	t.logger.Info("translation completed",
		logging.String(logging.FieldEventType, "translation_complete"),
		logging.Int("processed", summary.Processed),
		logging.Int("translated", summary.Translated),
		logging.Int("fallback", summary.Fallback),
		logging.Int("blank", summary.Blank),
		logging.Duration("elapsed", summary.Elapsed.Round(time.Millisecond)),
	)
	return summary, nil
}

var errEmptyTranslation = errors.New("empty translation")

// translateEntry returns "" with a nil error for entries without text, which
// are passed through without a request.
func (t *Translator) translateEntry(ctx context.Context, entry subtitles.Entry) (string, error) {
	if strings.TrimSpace(entry.Text) == "" {
		return "", nil
	}
	reply, err := t.completer.Complete(ctx, SystemPrompt, entry.Text)
	if err != nil {
		return "", err
	}
	cleaned := Clean(reply)
	if cleaned == "" {
		return "", errEmptyTranslation
	}
	t.logger.Debug("entry translated",
		logging.Int(logging.FieldEntryIndex, entry.Index),
		logging.Int("chars", len([]rune(cleaned))),
	)
	return cleaned, nil
}
