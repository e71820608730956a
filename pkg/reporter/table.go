package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cppdoc/internal/ui/pretty"
	"github.com/yaklabco/cppdoc/pkg/runner"
)

// TableReporter formats results as a table with one row per page.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, pretty.TermWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Pages) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Warning.Render("No pages to build."))
		}
		return 0, nil
	}

	display := *result
	display.Pages = make([]runner.PageOutcome, len(result.Pages))
	for i, page := range result.Pages {
		page.Output = relativePath(r.opts.WorkingDir, page.Output)
		display.Pages[i] = page
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(&display))

	failed := result.Failed()
	if len(failed) > 0 {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatFailures(result))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.Duration))
	}

	return len(failed), nil
}
