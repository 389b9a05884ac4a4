package logging

import (
	"context"
	"log/slog"
)

// sessionIDHandler stamps every record with the id of the current
// invocation, so the lines of one transcribe or translate run can be grouped
// when several runs share a log file.
type sessionIDHandler struct {
	next slog.Handler
	id   string
}

func newSessionIDHandler(next slog.Handler, id string) slog.Handler {
	if next == nil {
		return NoopHandler{}
	}
	return &sessionIDHandler{next: next, id: id}
}

func (h *sessionIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sessionIDHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String(FieldSessionID, h.id))
	return h.next.Handle(ctx, record)
}

func (h *sessionIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.next.WithAttrs(attrs))
}

func (h *sessionIDHandler) WithGroup(name string) slog.Handler {
	return h.wrap(h.next.WithGroup(name))
}

func (h *sessionIDHandler) wrap(next slog.Handler) slog.Handler {
	return &sessionIDHandler{next: next, id: h.id}
}
