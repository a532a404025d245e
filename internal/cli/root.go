package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/extkit/extbuild/internal/branding"
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir string
	verbose    bool
	rootBranch string
	rootFile   string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds, installs and packages a modular extension against a
local copy of its host application.

Select a pipeline with a subcommand, or with exactly one trigger flag:

  ` + branding.CLIName() + ` --all --branch 8.4.0
  ` + branding.CLIName() + ` --copy --file custom/Espo/Modules/MyModule/Resources/metadata/app/client.json`,
	Args:          noArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", ".", "Extension project directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	pipeline.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().StringVar(&rootBranch, "branch", "", "Host branch or tag to fetch (default from config)")
	rootCmd.Flags().StringVar(&rootFile, "file", "", "Copy only this file, relative to src/files")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &pipeline.UsageError{Msg: err.Error()}
	})
}

func runRoot(cmd *cobra.Command, args []string) error {
	command, err := pipeline.Select(cmd.Flags(), pipeline.Params{Branch: rootBranch, File: rootFile})
	if err != nil {
		var usage *pipeline.UsageError
		if errors.As(err, &usage) {
			_ = cmd.Usage()
		}
		return err
	}
	return runPipeline(cmd, command)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &pipeline.UsageError{Msg: err.Error()}
	}
	return nil
}

// Execute runs the root command with build info injected via ldflags. An
// interrupt cancels the running pipeline between stages and aborts the
// running tool.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), failureStyle.Render("✗ "+err.Error()))
	}
	return err
}

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *pipeline.UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}
