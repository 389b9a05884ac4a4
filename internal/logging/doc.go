// Package logging assembles structured slog loggers used by the subtrans
// pipelines.
//
// Logs always go to a diagnostic stream (stderr by default) so stdout stays
// reserved for subtitle documents. The package owns the console and JSON
// handlers, tags every record with a per-run session_id, and exposes attribute
// helpers plus WarnWithContext so warnings carry an event type, a hint, and the
// user-visible impact.
package logging
