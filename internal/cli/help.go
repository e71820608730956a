// Package cli provides the Cobra command structure for cppdoc.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/cppdoc/internal/ui/pretty"
)

// HelpStyles holds the lipgloss styles used by command help.
type HelpStyles struct {
	Command     lipgloss.Style // usage line and command path
	Heading     lipgloss.Style // section titles
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style // -f, --flag
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style // flag types and example notes
}

// NewHelpStyles returns colored styles, or plain ones when colorEnabled is
// false.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Example:     plain,
			Dim:         plain,
		}
	}

	fg := func(c string) lipgloss.Style { return plain.Foreground(lipgloss.Color(c)) }
	return &HelpStyles{
		Command:     fg("14").Bold(true),
		Heading:     fg("11").Bold(true),
		Subcommand:  fg("10"),
		Flag:        fg("12"),
		Description: plain,
		Example:     fg("14"),
		Dim:         fg("8"),
	}
}

// HelpFormatter renders styled help and usage for cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a formatter for writer. colorMode is "auto",
// "always" or "never".
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const commandListTemplate = `{{range .}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}`

const usageTemplate = `{{ styleHeading "Usage:" }}
{{- if .Runnable}}
  {{ styleCommand .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExamples .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}
{{- range $group := .Groups}}

{{ styleHeading $group.Title }}{{ template "commands" (groupCommands $.Commands $group.ID) }}
{{- end}}
{{- with (groupCommands .Commands "")}}

{{ styleHeading (ungroupedTitle $) }}{{ template "commands" . }}
{{- end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ styleCommand .CommandPath }}

{{with (or .Long .Short)}}{{ trimTrailingWhitespaces . }}

{{end}}{{ template "usage" . }}`

func (h *HelpFormatter) parse() (*template.Template, error) {
	funcs := template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleSubcommand":         h.styles.Subcommand.Render,
		"styleDescription":        h.styles.Description.Render,
		"styleExamples":           h.styleExamples,
		"styleFlags":              h.styleFlags,
		"groupCommands":           groupCommands,
		"ungroupedTitle":          ungroupedTitle,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}

	tmpl := template.New("help").Funcs(funcs)
	for name, text := range map[string]string{
		"help":     helpTemplate,
		"usage":    usageTemplate,
		"commands": commandListTemplate,
	} {
		if _, err := tmpl.New(name).Parse(text); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
	}
	return tmpl, nil
}

// ApplyToCommand installs the styled help and usage functions on cmd. Its
// subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl, err := h.parse()
	if err != nil {
		// The templates are constants; a parse failure keeps cobra's defaults.
		return
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return tmpl.ExecuteTemplate(c.OutOrStderr(), "usage", c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := tmpl.ExecuteTemplate(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// groupCommands returns the available commands in group id. The empty id
// selects ungrouped commands, including help.
func groupCommands(cmds []*cobra.Command, id string) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmds {
		if c.GroupID != id {
			continue
		}
		if c.IsAvailableCommand() || (id == "" && c.Name() == "help") {
			out = append(out, c)
		}
	}
	return out
}

func ungroupedTitle(cmd *cobra.Command) string {
	if len(cmd.Groups()) == 0 {
		return "Available Commands:"
	}
	return "Other Commands:"
}

// styleExamples styles lines such as "  cppdoc build -o public   Build
// into public/". The note after the column gap is dimmed.
func (h *HelpFormatter) styleExamples(examples string) string {
	lines := strings.Split(strings.TrimRight(examples, "\n"), "\n")
	for i, line := range lines {
		indent, left, right := splitColumns(line)
		switch {
		case left == "":
		case right == "":
			lines[i] = indent + h.styles.Example.Render(left)
		default:
			lines[i] = indent + h.styles.Example.Render(left) + "   " + h.styles.Dim.Render(right)
		}
	}
	return strings.Join(lines, "\n")
}

// styleFlags styles pflag's usage listing: flag names in the flag style,
// value types dimmed.
func (h *HelpFormatter) styleFlags(flags *pflag.FlagSet) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		indent, left, right := splitColumns(line)
		if left == "" || right == "" {
			continue
		}

		tokens := strings.Fields(left)
		for j, tok := range tokens {
			if name, ok := strings.CutSuffix(tok, ","); ok && strings.HasPrefix(name, "-") {
				tokens[j] = h.styles.Flag.Render(name) + ","
				continue
			}
			if strings.HasPrefix(tok, "-") {
				tokens[j] = h.styles.Flag.Render(tok)
				continue
			}
			tokens[j] = h.styles.Dim.Render(tok)
		}
		lines[i] = indent + strings.Join(tokens, " ") + "   " + h.styles.Description.Render(right)
	}
	return strings.Join(lines, "\n")
}

// splitColumns splits an indented two-column line at the first run of two
// or more spaces. right is empty when there is no such gap.
func splitColumns(line string) (indent, left, right string) {
	trimmed := strings.TrimLeft(line, " ")
	indent = line[:len(line)-len(trimmed)]

	if start := strings.Index(trimmed, "  "); start >= 0 {
		end := start
		for end < len(trimmed) && trimmed[end] == ' ' {
			end++
		}
		if end < len(trimmed) {
			return indent, trimmed[:start], trimmed[end:]
		}
	}
	return indent, strings.TrimRight(trimmed, " "), ""
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
