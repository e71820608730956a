package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/internal/logging"
	"github.com/yaklabco/cppdoc/pkg/config"
	"github.com/yaklabco/cppdoc/pkg/fsutil"
	"github.com/yaklabco/cppdoc/pkg/runner"
	"github.com/yaklabco/cppdoc/pkg/sidebar"
	"github.com/yaklabco/cppdoc/pkg/site"
)

type renderFlags struct {
	output     string
	page       bool
	noAutolink bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a single Markdown file to HTML",
		Long: `Render one Markdown file and print the HTML. Use "-" to read standard input.

By default only the document body is printed. With --page the body is
wrapped in a complete page, with navigation from sidebar.yml when FILE
lies inside the source directory.`,
		Example: `  cppdoc render ch01/loops.md
  cppdoc render --page -o loops.html ch01/loops.md
  echo '@"if" ( condition )@' | cppdoc render -`,
		GroupID: groupBuild,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of standard output")
	cmd.Flags().BoolVar(&flags.page, "page", false, "wrap the body in a complete HTML page")
	cmd.Flags().BoolVar(&flags.noAutolink, "no-autolink", false, "do not link standard library names")

	return cmd
}

func runRender(cmd *cobra.Command, name string, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	if flags.noAutolink {
		disabled := false
		cliCfg.Autolink.Enabled = &disabled
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	renderer, err := newSiteRenderer(ctx, cfg)
	if err != nil {
		return err
	}

	source, err := readInput(cmd, name)
	if err != nil {
		return err
	}

	var out []byte
	if flags.page {
		info, err := pageInfo(cfg, name)
		if err != nil {
			return err
		}
		out, err = renderer.Page(ctx, source, info)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
	} else {
		out, err = renderer.Render(ctx, source)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
	}

	if flags.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	written, err := fsutil.PublishIfChanged(ctx, flags.output, out, fsutil.PageMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	logger.Info("rendered", logging.FieldPath, flags.output, logging.FieldWritten, written)
	return nil
}

// pageInfo places name in the site outline when it lies inside the
// source directory.
func pageInfo(cfg *config.Config, name string) (site.PageInfo, error) {
	if name == "-" {
		return site.PageInfo{}, nil
	}

	sourceDir, err := filepath.Abs(cfg.Source)
	if err != nil {
		return site.PageInfo{}, fmt.Errorf("resolve source directory: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return site.PageInfo{}, fmt.Errorf("resolve %s: %w", name, err)
	}
	rel, err := filepath.Rel(sourceDir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return site.PageInfo{}, nil //nolint:nilerr // outside the site: no navigation
	}

	outline, err := runner.LoadSidebar(sourceDir)
	if err != nil {
		return site.PageInfo{}, err
	}
	return site.PageInfo{Link: sidebar.LinkFor(rel), Sidebar: outline}, nil
}
