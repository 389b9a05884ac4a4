package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a warning or error for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to an operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSessionID is the standardized structured logging key for per-run identifiers.
	FieldSessionID = "session_id"
	// FieldEntryIndex is the subtitle index being processed.
	FieldEntryIndex = "entry_index"
)
