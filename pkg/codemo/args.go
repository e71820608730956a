package codemo

import (
	"fmt"
	"strconv"
	"strings"
)

// Args are the parameters of a codemo fence attribute, e.g.
// "codemo(focus=3-5/8,input=1_2)".
type Args struct {
	// Focus lists 1-indexed lines of the full source.
	Focus []int

	// Input is the unescaped program input, if any.
	Input string

	// HasInput reports whether an input key was present.
	HasInput bool

	// Show opens the runnable view immediately.
	Show bool

	// Text marks the output as plain text. TextValue holds an optional
	// caption given as text=….
	Text      bool
	TextValue string

	// Clear starts the runnable view with empty output.
	Clear bool
}

// ArgError reports a malformed codemo argument.
type ArgError struct {
	Key string
	Msg string
}

// Error implements the error interface.
func (e *ArgError) Error() string {
	if e.Key == "" {
		return "codemo: " + e.Msg
	}
	return fmt.Sprintf("codemo %s: %s", e.Key, e.Msg)
}

// ParseArgs parses the parenthesized key list in attr. An attribute
// without a parameter list yields zero Args.
func ParseArgs(attr string) (*Args, error) {
	args := &Args{}

	lParen := strings.Index(attr, "(")
	if lParen < 0 {
		return args, nil
	}
	rParen := strings.Index(attr[lParen:], ")")
	if rParen < 0 {
		return nil, &ArgError{Msg: "unterminated parameter list"}
	}
	body := attr[lParen+1 : lParen+rParen]
	if strings.TrimSpace(body) == "" {
		return args, nil
	}

	for _, part := range strings.Split(body, ",") {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := args.set(key, value, hasValue); err != nil {
			return nil, err
		}
	}

	return args, nil
}

func (a *Args) set(key, value string, hasValue bool) error {
	switch key {
	case "focus":
		if !hasValue || value == "" {
			return &ArgError{Key: key, Msg: "expected a value but nothing found"}
		}
		lines, err := parseFocus(value)
		if err != nil {
			return err
		}
		a.Focus = append(a.Focus, lines...)
	case "input":
		a.HasInput = true
		if hasValue {
			a.Input = UnescapeInput(value)
		}
	case "show":
		a.Show = true
	case "clear":
		a.Clear = true
	case "text":
		a.Text = true
		a.TextValue = value
	case "":
		return &ArgError{Msg: "empty parameter"}
	default:
		return &ArgError{Key: key, Msg: "unknown parameter"}
	}
	return nil
}

// parseFocus parses "3/5-7" into [3 5 6 7].
func parseFocus(value string) ([]int, error) {
	var lines []int

	for _, part := range strings.Split(value, "/") {
		part = strings.TrimSpace(part)
		if startStr, endStr, isRange := strings.Cut(part, "-"); isRange && startStr != "" {
			start, err := strconv.Atoi(strings.TrimSpace(startStr))
			if err != nil {
				return nil, &ArgError{Key: "focus", Msg: fmt.Sprintf("invalid range %q", part)}
			}
			end, err := strconv.Atoi(strings.TrimSpace(endStr))
			if err != nil || start < 0 || end < start {
				return nil, &ArgError{Key: "focus", Msg: fmt.Sprintf("invalid range %q", part)}
			}
			for line := start; line <= end; line++ {
				lines = append(lines, line)
			}
			continue
		}

		line, err := strconv.Atoi(part)
		if err != nil || line < 0 {
			return nil, &ArgError{Key: "focus", Msg: fmt.Sprintf("invalid line %q", part)}
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// inputSteps is the ordered substitution sequence for input values. Later
// steps consume characters produced by earlier ones, so the order matters.
var inputSteps = [...][2]string{
	{"_", " "},
	{";", ","},
	{`\,`, ";"},
	{`\n`, "\n"},
	{`\ `, "_"},
	{`\\`, `\`},
}

// UnescapeInput decodes an input attribute value. A literal space is
// written "_", a comma ";", a semicolon "\;", a newline "\n", an
// underscore "\_" and a backslash "\\".
func UnescapeInput(value string) string {
	for _, step := range inputSteps {
		value = strings.ReplaceAll(value, step[0], step[1])
	}
	return value
}
