package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cppdoc/internal/ui/pretty"
	"github.com/yaklabco/cppdoc/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	if r.opts.Verbose {
		for _, page := range result.Pages {
			if page.Error != nil {
				continue
			}
			verb := "unchanged"
			if page.Written {
				verb = "wrote"
			}
			fmt.Fprintf(r.bw, "  %s %s %s\n",
				r.styles.Dim.Render(verb),
				r.styles.FilePath.Render(page.Rel),
				r.styles.Dim.Render("-> "+relativePath(r.opts.WorkingDir, page.Output)),
			)
		}
	}

	failed := result.Failed()
	if len(failed) > 0 {
		fmt.Fprint(r.bw, r.styles.FormatFailures(result))
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.Duration))
	}

	return len(failed), nil
}
