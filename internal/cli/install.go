package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: pipeline.KindInstall.Describe(),
	Long: `Install the host already present in site/, then every archive in
extensions/, then fix ownership.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.InstallOnly{})
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
