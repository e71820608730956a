package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/pkg/autolink"
	"github.com/yaklabco/cppdoc/pkg/config"
)

type symbolsFlags struct {
	code   string
	index  string
	format string
}

// symbolMatch is a resolved span as printed by the symbols command.
type symbolMatch struct {
	Begin int    `json:"begin"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Link  string `json:"link"`
	Href  string `json:"href"`
}

func newSymbolsCommand() *cobra.Command {
	flags := &symbolsFlags{}

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List the symbol index or the symbols found in code",
		Long: `Without --code, list the entries of the symbol index used to link standard
library names. With --code, resolve the symbols in a C++ file ("-" reads
standard input) and print each linked span.`,
		Example: `  cppdoc symbols
  cppdoc symbols --code main.cpp
  cppdoc symbols --index symbols.yml --format json`,
		GroupID: groupInspect,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSymbols(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.code, "code", "", "C++ file to resolve symbols in")
	cmd.Flags().StringVar(&flags.index, "index", "", "symbol index file (.json, .yml, .yaml)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runSymbols(cmd *cobra.Command, flags *symbolsFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return &UsageError{Msg: fmt.Sprintf("invalid format %q: must be text or json", flags.format)}
	}

	ctx := commandContext(cmd)
	cfg, err := loadConfig(ctx, cmd, &config.Config{
		Autolink: config.AutolinkConfig{Index: flags.index},
	})
	if err != nil {
		return err
	}

	index, err := loadIndex(cfg)
	if err != nil {
		return err
	}
	linker := autolink.NewLinker(index, cfg.Autolink.BaseURL)

	if flags.code == "" {
		return printIndex(cmd, linker, flags.format)
	}

	code, err := readInput(cmd, flags.code)
	if err != nil {
		return err
	}

	spans := autolink.Resolve(string(code), index.Entries())
	matches := make([]symbolMatch, 0, len(spans))
	for _, span := range spans {
		matches = append(matches, symbolMatch{
			Begin: span.Begin,
			End:   span.End,
			Text:  string(code[span.Begin:span.End]),
			Link:  span.Link,
			Href:  linker.Href(span.Link),
		})
	}

	if flags.format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(matches)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, m := range matches {
		fmt.Fprintf(tw, "%d-%d\t%s\t%s\n", m.Begin, m.End, m.Text, m.Href)
	}
	return tw.Flush()
}

func printIndex(cmd *cobra.Command, linker *autolink.Linker, format string) error {
	entries := linker.Index.Entries()

	if format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if entries == nil {
			entries = []autolink.Entry{}
		}
		return encoder.Encode(entries)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tURL")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, linker.Href(e.Link))
	}
	return tw.Flush()
}
