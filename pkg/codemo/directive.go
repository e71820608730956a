// Package codemo implements annotated code blocks: inline directives that
// redact lines from the visible listing and mark lines for focus, plus the
// fence handler that renders both the redacted and the full source.
package codemo

import (
	"fmt"
	"regexp"
	"strings"
)

// Directive keywords.
const (
	DirectiveHide          = "hide"
	DirectiveShow          = "show"
	DirectiveFocusNextLine = "focus-next-line"
)

var directiveRe = regexp.MustCompile(`^\s*//\s+codemo\b(.*)$`)

// DirectiveError reports a directive line with an unknown keyword.
type DirectiveError struct {
	// Line is the 1-indexed line within the trimmed block.
	Line int

	// Keyword is the unrecognized keyword (may be empty).
	Keyword string
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	return fmt.Sprintf("line %d: unknown codemo directive %q", e.Line, e.Keyword)
}

// SplitResult holds the two views of an annotated block.
type SplitResult struct {
	// ShownLines are the lines visible in the redacted listing.
	ShownLines []string

	// ShownFocus are 1-indexed positions in ShownLines to focus.
	ShownFocus []int

	// FullLines are all non-directive lines.
	FullLines []string

	// FullFocus are 1-indexed positions in FullLines to focus.
	FullFocus []int

	// Pure is true when the block had no directive lines.
	Pure bool
}

// Shown joins the visible lines.
func (r *SplitResult) Shown() string {
	return strings.Join(r.ShownLines, "\n")
}

// Full joins all non-directive lines.
func (r *SplitResult) Full() string {
	return strings.Join(r.FullLines, "\n")
}

type lineKind int

const (
	lineContent lineKind = iota
	lineDirective
)

type classifiedLine struct {
	kind  lineKind
	value string
}

// Split classifies the lines of raw and builds the shown and full views.
func Split(raw string) (*SplitResult, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")

	parsed := make([]classifiedLine, 0, len(lines))
	hide, hideSet := false, false
	pure := true

	for i, line := range lines {
		keyword, ok := matchDirective(line)
		if !ok {
			parsed = append(parsed, classifiedLine{kind: lineContent, value: line})
			continue
		}

		switch keyword {
		case DirectiveHide, DirectiveShow:
			// The first hide/show decides the state of the lines before it.
			if !hideSet {
				hide, hideSet = keyword == DirectiveShow, true
			}
		case DirectiveFocusNextLine:
		default:
			return nil, &DirectiveError{Line: i + 1, Keyword: keyword}
		}

		pure = false
		parsed = append(parsed, classifiedLine{kind: lineDirective, value: keyword})
	}

	result := &SplitResult{Pure: pure}
	for _, line := range parsed {
		if line.kind == lineContent {
			if !hide {
				result.ShownLines = append(result.ShownLines, line.value)
			}
			result.FullLines = append(result.FullLines, line.value)
			continue
		}

		switch line.value {
		case DirectiveHide:
			hide = true
		case DirectiveShow:
			hide = false
		case DirectiveFocusNextLine:
			result.ShownFocus = append(result.ShownFocus, len(result.ShownLines)+1)
			result.FullFocus = append(result.FullFocus, len(result.FullLines)+1)
		}
	}

	return result, nil
}

// matchDirective reports whether line is a directive and returns its
// keyword: all text after "codemo", trimmed. Extra words stay in the
// keyword, so "// codemo hide me" is an unknown directive rather than hide.
func matchDirective(line string) (string, bool) {
	m := directiveRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
