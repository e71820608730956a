package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/internal/configloader"
	"github.com/yaklabco/cppdoc/internal/logging"
	"github.com/yaklabco/cppdoc/pkg/autolink"
	"github.com/yaklabco/cppdoc/pkg/config"
	"github.com/yaklabco/cppdoc/pkg/site"
)

// commandContext returns the command's context with the default logger
// attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig layers the configuration files, the environment and the
// flags the user set in cliCfg.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldInput, cfg.Source,
		logging.FieldOutput, cfg.Output,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldAutolink, cfg.Autolink.IsEnabled(),
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

// loadIndex returns the symbol index named by the configuration, or the
// embedded one.
func loadIndex(cfg *config.Config) (*autolink.Index, error) {
	if cfg.Autolink.Index == "" {
		return autolink.DefaultIndex(), nil
	}
	index, err := autolink.LoadIndex(cfg.Autolink.Index)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// newSiteRenderer builds the page renderer described by cfg.
func newSiteRenderer(ctx context.Context, cfg *config.Config) (*site.Renderer, error) {
	opts := site.Options{
		Flavor:         string(cfg.Flavor),
		Autolink:       cfg.Autolink.IsEnabled(),
		BaseURL:        cfg.Autolink.BaseURL,
		TriggerTitle:   cfg.Codemo.TriggerTitle,
		DetectLanguage: cfg.DetectLanguage,
		SiteTitle:      cfg.Title,
		Lang:           cfg.Lang,
	}

	if opts.Autolink {
		index, err := loadIndex(cfg)
		if err != nil {
			return nil, err
		}
		opts.Index = index
		logging.FromContext(ctx).Debug("symbol index ready",
			logging.FieldIndex, cfg.Autolink.Index,
			"entries", index.Len(),
		)
	}

	return site.New(opts), nil
}
