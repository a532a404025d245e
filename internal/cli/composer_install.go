package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var composerInstallCmd = &cobra.Command{
	Use:   "composer-install",
	Short: pipeline.KindComposerInstall.Describe(),
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.ComposerInstall{})
	},
}

func init() {
	rootCmd.AddCommand(composerInstallCmd)
}
