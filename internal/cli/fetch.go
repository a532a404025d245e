package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var fetchBranch string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: pipeline.KindFetch.Describe(),
	Long:  `Replace site/ with a fresh copy of the host application downloaded from the configured repository.`,
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.FetchOnly{Branch: fetchBranch})
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchBranch, "branch", "", "Host branch or tag to fetch (default from config)")
	rootCmd.AddCommand(fetchCmd)
}
