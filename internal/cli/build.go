package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/internal/logging"
	"github.com/yaklabco/cppdoc/pkg/config"
	"github.com/yaklabco/cppdoc/pkg/reporter"
	"github.com/yaklabco/cppdoc/pkg/runner"
	"github.com/yaklabco/cppdoc/pkg/watch"
)

type buildFlags struct {
	source         string
	output         string
	format         string
	flavor         string
	ignore         []string
	jobs           int
	watch          bool
	verbose        bool
	compact        bool
	noAutolink     bool
	detectLanguage bool
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Render every page of the tutorial",
		Long:    buildLongDescription,
		Example: buildExamples,
		GroupID: groupBuild,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "directory holding the Markdown sources (default \".\")")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "directory receiving the pages (default \"dist\")")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, table, json, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rebuild when sources change")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every page in the report")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.noAutolink, "no-autolink", false, "do not link standard library names")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false, "guess the language of unlabeled code blocks")

	return cmd
}

const buildExamples = `  cppdoc build                     Build . into dist/
  cppdoc build -s docs -o public   Build docs/ into public/
  cppdoc build --watch             Rebuild on every change
  cppdoc build --format json       Machine-readable report`

const buildLongDescription = `Render every Markdown page under the source directory into HTML.

README.md becomes index.html and every other page keeps its name with an
.html extension. sidebar.yml in the source directory provides the
navigation. Pages that fail to render are reported and the command exits
non-zero; the other pages are still written.`

// cliConfig converts the flags the user set into a configuration layer.
func (f *buildFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Source:         f.source,
		Output:         f.output,
		Flavor:         config.Flavor(f.flavor),
		Ignore:         f.ignore,
		DetectLanguage: f.detectLanguage,
		Jobs:           f.jobs,
		Watch:          f.watch,
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if f.noAutolink {
		disabled := false
		cfg.Autolink.Enabled = &disabled
	}
	return cfg
}

func runBuild(cmd *cobra.Command, flags *buildFlags) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return &UsageError{Msg: err.Error()}
	}

	renderer, err := newSiteRenderer(ctx, cfg)
	if err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	b := &builder{
		runner: runner.New(renderer),
		opts: runner.Options{
			SourceDir:    cfg.Source,
			OutputDir:    cfg.Output,
			ExcludeGlobs: cfg.Ignore,
			IgnoreFile:   cfg.IgnoreFile,
			Jobs:         cfg.Jobs,
		},
		report: reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Format:      format,
			Color:       colorMode,
			ShowSummary: true,
			Verbose:     flags.verbose,
			Compact:     flags.compact,
			WorkingDir:  workDir,
		},
	}

	result, err := b.build(ctx)
	if err != nil {
		return err
	}

	if cfg.Watch {
		return b.watch(ctx, cfg)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrBuildFailed
	}
	return nil
}

// builder runs one build and reports it.
type builder struct {
	runner *runner.Runner
	opts   runner.Options
	report reporter.Options
}

func (b *builder) build(ctx context.Context) (*runner.Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithFields(ctx, logging.FieldRunID, runID)

	result, err := b.runner.Run(ctx, b.opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	opts := b.report
	opts.RunID = runID
	rep, err := reporter.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return nil, fmt.Errorf("report results: %w", err)
	}

	return result, nil
}

// watch rebuilds the site on every source change until ctx is cancelled.
func (b *builder) watch(ctx context.Context, cfg *config.Config) error {
	logger := logging.FromContext(ctx)

	outputDir, err := filepath.Abs(cfg.Output)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}

	w, err := watch.New(watch.Options{
		Root: cfg.Source,
		Skip: []string{outputDir},
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	logger.Info("watching for changes", logging.FieldPath, cfg.Source)

	return w.Run(ctx, func(ctx context.Context, changed []string) error {
		logger.Debug("rebuilding", logging.FieldPaths, changed)
		start := time.Now()
		result, err := b.build(ctx)
		if err != nil {
			return err
		}
		logger.Debug("rebuild finished",
			logging.FieldDuration, time.Since(start),
			logging.FieldPagesFailed, result.Stats.PagesFailed,
		)
		return nil
	})
}
