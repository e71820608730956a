package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/pkg/sdsc"
)

const (
	grammarFormatText = "text"
	grammarFormatJSON = "json"
	grammarFormatHTML = "html"
)

func newGrammarCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "grammar [EXPR|-]",
		Short: "Parse grammar notation and print the result",
		Long: `Parse an expression in the grammar notation used by sdsc code blocks.

Without an argument, or with "-", the expression is read from standard
input. The text format prints the canonical notation, json the parse tree,
and html the rendered block.`,
		Example: `  cppdoc grammar 'decl-specifier-seq [ init-declarator-list ] ";"'
  cppdoc grammar --format json '"if" ( condition ) statement'`,
		GroupID: groupInspect,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrammar(cmd, args, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", grammarFormatText, "output format: text, json, html")

	return cmd
}

func runGrammar(cmd *cobra.Command, args []string, format string) error {
	switch format {
	case grammarFormatText, grammarFormatJSON, grammarFormatHTML:
	default:
		return &UsageError{Msg: fmt.Sprintf("invalid format %q: must be text, json or html", format)}
	}

	var expr string
	if len(args) == 1 && args[0] != "-" {
		expr = args[0]
	} else {
		data, err := readInput(cmd, "-")
		if err != nil {
			return err
		}
		expr = strings.TrimSuffix(string(data), "\n")
	}

	nodes, err := sdsc.Parse(expr)
	if err != nil {
		return fmt.Errorf("parse grammar: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case grammarFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if nodes == nil {
			nodes = []sdsc.Node{}
		}
		return encoder.Encode(nodes)
	case grammarFormatHTML:
		_, err = fmt.Fprint(out, sdsc.RenderBlock(nodes))
	default:
		_, err = fmt.Fprintln(out, sdsc.Format(nodes))
	}
	return err
}
