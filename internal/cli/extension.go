package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var extensionCmd = &cobra.Command{
	Use:     "extension",
	Aliases: []string{"package"},
	Short:   pipeline.KindPackage.Describe(),
	Long: `Build the installable archive build/<name>-<version>.zip from src/, the
manifests and, for bundled extensions, the bundler output.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.Package{})
	},
}

func init() {
	rootCmd.AddCommand(extensionCmd)
}
