package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var allBranch string

var allCmd = &cobra.Command{
	Use:   "all",
	Short: pipeline.KindFull.Describe(),
	Long: `Fetch the host application into site/, install it, install the archives
found in extensions/, copy the extension in, install its composer
dependencies, rebuild, run the after-install hook and fix ownership.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.Full{Branch: allBranch})
	},
}

func init() {
	allCmd.Flags().StringVar(&allBranch, "branch", "", "Host branch or tag to fetch (default from config)")
	rootCmd.AddCommand(allCmd)
}
