package cli

import (
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var copyFile string

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: pipeline.KindCopy.Describe(),
	Long: `Copy the extension sources into site/, replacing the previous module files,
then fix ownership. With --file only that file is copied.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.CopyOnly{File: copyFile})
	},
}

func init() {
	copyCmd.Flags().StringVar(&copyFile, "file", "", "Copy only this file, relative to src/files")
	rootCmd.AddCommand(copyCmd)
}
