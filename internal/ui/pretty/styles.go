// Package pretty renders build results for terminals with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTermWidth is used when the writer is not a terminal.
const DefaultTermWidth = 80

// Styles holds the lipgloss styles of build reports.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Page failures: "ch01/loops.md:12  error  message  (cpp)".
	FilePath lipgloss.Style
	Location lipgloss.Style
	Lang     lipgloss.Style
	Message  lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	RowWritten     lipgloss.Style
	RowUnchanged   lipgloss.Style
	RowFailed      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI colors.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorCyan   = "14"
	colorGrey   = "8"
	colorWhite  = "7"
)

// NewStyles returns report styles. With colorEnabled false every style
// renders text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return style.Bold(true)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),

		FilePath: bold(plain),
		Location: fg(colorGrey),
		Lang:     fg(colorCyan),
		Message:  plain,

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorWhite)),
		TableSeparator: fg(colorGrey),
		RowWritten:     fg(colorGreen),
		RowUnchanged:   fg(colorGrey),
		RowFailed:      fg(colorRed),

		Dim:  fg(colorGrey),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never") for
// writer. Auto enables color on terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TermWidth returns the column count of the terminal behind writer, or
// DefaultTermWidth if it has none.
func TermWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return DefaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
	if err != nil || width <= 0 {
		return DefaultTermWidth
	}
	return width
}
