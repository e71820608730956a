package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/cppdoc/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordPage            = "page"
	wordPages           = "pages"
)

func plural(n int) string {
	if n == 1 {
		return wordPage
	}
	return wordPages
}

// FormatSummaryOneLine formats build statistics as a single line.
// Example: "Built 12 pages (3 written, 9 unchanged) in 140ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, duration time.Duration) string {
	if stats.FilesDiscovered == 0 {
		return s.Warning.Render("No pages found") + "\n"
	}

	var parts []string

	if stats.PagesRendered > 0 {
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("Built %d %s", stats.PagesRendered, plural(stats.PagesRendered)),
		)+s.Dim.Render(fmt.Sprintf(" (%d written, %d unchanged)", stats.PagesWritten, stats.PagesUnchanged)))
	}

	if stats.PagesFailed > 0 {
		parts = append(parts, s.Failure.Render(
			fmt.Sprintf("%d %s failed", stats.PagesFailed, plural(stats.PagesFailed)),
		))
	}

	line := strings.Join(parts, ", ")
	if duration > 0 {
		line += s.Dim.Render(" in " + duration.Round(time.Millisecond).String())
	}
	return line + "\n"
}

// FormatSummary formats build statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.Dim.Render(strings.Repeat("-", summaryDividerWidth)))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Pages rendered:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.PagesRendered)) + "\n")

	if stats.PagesWritten > 0 {
		builder.WriteString("    Written:         " +
			s.Success.Render(strconv.Itoa(stats.PagesWritten)) + "\n")
	}
	if stats.PagesUnchanged > 0 {
		builder.WriteString("    Unchanged:       " +
			s.Dim.Render(strconv.Itoa(stats.PagesUnchanged)) + "\n")
	}
	if stats.PagesFailed > 0 {
		builder.WriteString("  Pages failed:      " +
			s.Failure.Render(strconv.Itoa(stats.PagesFailed)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.PagesFailed > 0:
		builder.WriteString(s.Failure.Render("Build failed"))
	case stats.FilesDiscovered == 0:
		builder.WriteString(s.Warning.Render("Nothing to build"))
	default:
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
