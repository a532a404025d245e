package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: pipeline.KindRebuild.Describe(),
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.Rebuild{})
	},
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}
