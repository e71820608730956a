package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/internal/ui/pretty"
	"github.com/yaklabco/cppdoc/pkg/config"
	"github.com/yaklabco/cppdoc/pkg/sidebar"
)

func newSidebarCommand() *cobra.Command {
	var format string
	var source string

	cmd := &cobra.Command{
		Use:   "sidebar",
		Short: "Print the resolved site outline",
		Long: `Resolve sidebar.yml in the source directory and print the outline with the
title of every page, in navigation order.`,
		Example: `  cppdoc sidebar
  cppdoc sidebar -s docs --format json`,
		GroupID: groupInspect,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSidebar(cmd, source, format)
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "directory holding sidebar.yml")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func runSidebar(cmd *cobra.Command, source, format string) error {
	if format != "text" && format != "json" {
		return &UsageError{Msg: fmt.Sprintf("invalid format %q: must be text or json", format)}
	}

	ctx := commandContext(cmd)
	cfg, err := loadConfig(ctx, cmd, &config.Config{Source: source})
	if err != nil {
		return err
	}

	outline, err := sidebar.Load(cfg.Source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		items := outline.Items
		if items == nil {
			items = []sidebar.Item{}
		}
		return encoder.Encode(items)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	writeOutline(out, styles, outline.Items, 0)
	return nil
}

func writeOutline(w io.Writer, styles *pretty.Styles, items []sidebar.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		fmt.Fprintf(w, "%s- %s  %s\n", indent,
			styles.Bold.Render(item.Text),
			styles.Dim.Render(sidebar.Href(item.Link)),
		)
		writeOutline(w, styles, item.Children, depth+1)
	}
}
