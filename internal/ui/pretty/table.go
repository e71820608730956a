package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/cppdoc/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // PAGE, OUTPUT, STATUS, TIME
	minPageWidth     = 16
	minOutputWidth   = 16
	statusWidth      = 9
	timeWidth        = 8
	heavySeparator   = "="
	lightSeparator   = "-"

	statusWritten   = "written"
	statusUnchanged = "unchanged"
	statusFailed    = "failed"
)

// TableRow represents a single page in the build table.
type TableRow struct {
	Page     string
	Output   string
	Status   string
	Duration time.Duration
}

// TableFormatter formats build outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	page   int
	output int
}

// FormatTable formats a build result as a table, one row per page.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Pages) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Pages))
	for _, page := range result.Pages {
		rows = append(rows, PageToTableRow(page))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
	return builder.String()
}

// calculateColumnWidths sizes the PAGE and OUTPUT columns to their
// content, shrinking both when the table would exceed the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{page: minPageWidth, output: minOutputWidth}
	for _, row := range rows {
		widths.page = max(widths.page, lipgloss.Width(row.Page))
		widths.output = max(widths.output, lipgloss.Width(row.Output))
	}

	fixed := statusWidth + timeWidth + tablePadding*tableColumnCount
	for widths.page+widths.output+fixed > t.termWidth {
		switch {
		case widths.output > minOutputWidth && widths.output >= widths.page:
			widths.output--
		case widths.page > minPageWidth:
			widths.page--
		case widths.output > minOutputWidth:
			widths.output--
		default:
			return widths
		}
	}
	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %s  %s  %-*s  %*s",
		padRight("PAGE", widths.page),
		padRight("OUTPUT", widths.output),
		statusWidth, "STATUS",
		timeWidth, "TIME",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	total := widths.page + widths.output + statusWidth + timeWidth + tablePadding*tableColumnCount
	return t.styles.TableSeparator.Render(strings.Repeat(char, total))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	content := fmt.Sprintf(" %s  %s  %-*s  %*s",
		padRight(truncateFilePath(row.Page, widths.page), widths.page),
		padRight(truncateFilePath(row.Output, widths.output), widths.output),
		statusWidth, row.Status,
		timeWidth, row.Duration.Round(time.Millisecond).String(),
	)
	return t.getRowStyle(row.Status).Render(content)
}

func (t *TableFormatter) getRowStyle(status string) lipgloss.Style {
	switch status {
	case statusWritten:
		return t.styles.RowWritten
	case statusUnchanged:
		return t.styles.RowUnchanged
	case statusFailed:
		return t.styles.RowFailed
	default:
		return lipgloss.NewStyle()
	}
}

// truncateFilePath shortens path to maxLen terminal cells, keeping the
// file name end. Chapter names are often CJK, so widths are measured in
// cells rather than bytes.
func truncateFilePath(path string, maxLen int) string {
	if lipgloss.Width(path) <= maxLen {
		return path
	}

	const ellipsis = "..."
	budget := maxLen - len(ellipsis)
	prefix := ellipsis
	if budget <= 0 {
		budget, prefix = maxLen, ""
	}

	runes := []rune(path)
	start := len(runes)
	for width := 0; start > 0; start-- {
		w := lipgloss.Width(string(runes[start-1]))
		if width+w > budget {
			break
		}
		width += w
	}
	return prefix + string(runes[start:])
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PageToTableRow converts a page outcome to a table row.
func PageToTableRow(page runner.PageOutcome) TableRow {
	status := statusUnchanged
	switch {
	case page.Error != nil:
		status = statusFailed
	case page.Written:
		status = statusWritten
	}
	return TableRow{
		Page:     page.Rel,
		Output:   page.Output,
		Status:   status,
		Duration: page.Duration,
	}
}
