package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError    = "error"
	FieldPath     = "path"
	FieldBytes    = "bytes"
	FieldVersion  = "version"
	FieldDuration = "duration"
	FieldOp       = "op"

	// Viewport fields.
	FieldRow    = "row"
	FieldColumn = "column"
	FieldRows   = "rows"
	FieldCols   = "cols"

	// Edit session fields.
	FieldSession  = "session"
	FieldMode     = "mode"
	FieldLine     = "line"
	FieldArgv     = "argv"
	FieldExitCode = "exit_code"

	// Configuration fields.
	FieldConfig  = "config"
	FieldEditor  = "editor"
	FieldWatch   = "watch"
	FieldMissing = "missing"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)
