// Package cli provides the Cobra command structure for cppdoc.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/internal/logging"
)

// Command group IDs used in help output.
const (
	groupBuild   = "build"
	groupInspect = "inspect"
	groupSetup   = "setup"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root cppdoc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "cppdoc",
		Short: "Render a Markdown C++ tutorial into static HTML",
		Long: `cppdoc renders a C++ tutorial written in Markdown into static HTML pages.

Code blocks get syntax highlighting, and standard library names in C++ code
link to reference documentation. Runnable examples can hide setup lines
behind codemo directives. Grammar notation in sdsc blocks is rendered as
styled syntax descriptions.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupBuild, Title: "Build Commands:"},
		&cobra.Group{ID: groupInspect, Title: "Inspect Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newGrammarCommand())
	rootCmd.AddCommand(newSymbolsCommand())
	rootCmd.AddCommand(newSidebarCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
