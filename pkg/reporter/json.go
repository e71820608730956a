package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yaklabco/cppdoc/pkg/runner"
	"github.com/yaklabco/cppdoc/pkg/site"
)

// jsonVersion is the schema version of JSONOutput.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string      `json:"version"`
	RunID   string      `json:"runId"`
	Pages   []JSONPage  `json:"pages"`
	Summary JSONSummary `json:"summary"`
}

// JSONPage represents a single page's outcome.
type JSONPage struct {
	Path       string     `json:"path"`
	Link       string     `json:"link"`
	Output     string     `json:"output,omitempty"`
	Written    bool       `json:"written"`
	DurationMS int64      `json:"durationMs"`
	Error      *JSONError `json:"error,omitempty"`
}

// JSONError describes why a page failed.
type JSONError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	PagesRendered   int   `json:"pagesRendered"`
	PagesWritten    int   `json:"pagesWritten"`
	PagesUnchanged  int   `json:"pagesUnchanged"`
	PagesFailed     int   `json:"pagesFailed"`
	DurationMS      int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.PagesFailed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	runID := r.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	output := &JSONOutput{
		Version: jsonVersion,
		RunID:   runID,
		Pages:   make([]JSONPage, 0),
	}

	if result == nil {
		return output
	}

	output.Pages = make([]JSONPage, 0, len(result.Pages))
	for _, page := range result.Pages {
		output.Pages = append(output.Pages, JSONPage{
			Path:       page.Rel,
			Link:       page.Link,
			Output:     relativePath(r.opts.WorkingDir, page.Output),
			Written:    page.Written,
			DurationMS: page.Duration.Milliseconds(),
			Error:      jsonError(page.Error),
		})
	}

	output.Summary = JSONSummary{
		FilesDiscovered: result.Stats.FilesDiscovered,
		PagesRendered:   result.Stats.PagesRendered,
		PagesWritten:    result.Stats.PagesWritten,
		PagesUnchanged:  result.Stats.PagesUnchanged,
		PagesFailed:     result.Stats.PagesFailed,
		DurationMS:      result.Duration.Milliseconds(),
	}

	return output
}

func jsonError(err error) *JSONError {
	if err == nil {
		return nil
	}

	var blockErr *site.BlockError
	if errors.As(err, &blockErr) {
		return &JSONError{Message: blockErr.Err.Error(), Line: blockErr.Line, Lang: blockErr.Lang}
	}
	return &JSONError{Message: err.Error()}
}
