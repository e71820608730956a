// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFlavor   = "flavor"
	FieldJobs     = "jobs"
	FieldAutolink = "autolink"
	FieldIndex    = "index"

	// Build fields.
	FieldPage     = "page"
	FieldLine     = "line"
	FieldLang     = "lang"
	FieldWritten  = "written"
	FieldDuration = "duration"
	FieldRunID    = "run_id"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldPagesRendered   = "pages_rendered"
	FieldPagesWritten    = "pages_written"
	FieldPagesFailed     = "pages_failed"

	// Watch fields.
	FieldEvent = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
