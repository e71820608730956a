package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/cppdoc/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		Long:    `Print the version, commit hash, and build date of cppdoc.`,
		GroupID: groupSetup,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logging.NewWriter(cmd.OutOrStdout(), "info").Info("cppdoc",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}

	return cmd
}
