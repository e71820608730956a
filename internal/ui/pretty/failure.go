package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/cppdoc/pkg/runner"
	"github.com/yaklabco/cppdoc/pkg/site"
)

// FormatFailure formats a failed page as "path:line  error  message (lang)".
// Errors that do not come from a code block are shown without a line.
func (s *Styles) FormatFailure(page runner.PageOutcome) string {
	if page.Error == nil {
		return ""
	}

	location := s.FilePath.Render(page.Rel)
	message := page.Error.Error()
	var lang string

	var blockErr *site.BlockError
	if errors.As(page.Error, &blockErr) {
		location += s.Location.Render(fmt.Sprintf(":%d", blockErr.Line))
		message = blockErr.Err.Error()
		lang = blockErr.Lang
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("  %s  %s  %s",
		location,
		s.Error.Render("error"),
		s.Message.Render(message),
	))
	if lang != "" {
		builder.WriteString("  " + s.Lang.Render("("+lang+")"))
	}
	builder.WriteString("\n")
	return builder.String()
}

// FormatFailures formats every failed page of result, in page order.
func (s *Styles) FormatFailures(result *runner.Result) string {
	var builder strings.Builder
	for _, page := range result.Failed() {
		builder.WriteString(s.FormatFailure(page))
	}
	return builder.String()
}
