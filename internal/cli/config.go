package cli

import (
	"fmt"
	"path/filepath"

	"github.com/extkit/extbuild/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration after merging config-default.json, config.json and
EXTBUILD_* environment overrides. Passwords are masked.`,
	Args: noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(projectDir)
		if err != nil {
			return fmt.Errorf("resolving project directory: %w", err)
		}
		cfg, err := config.Load(dir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
