package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var afterInstallCmd = &cobra.Command{
	Use:   "after-install",
	Short: pipeline.KindAfterInstall.Describe(),
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.AfterInstall{})
	},
}

func init() {
	rootCmd.AddCommand(afterInstallCmd)
}
