package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/extkit/extbuild/internal/config"
	"github.com/extkit/extbuild/internal/gateway"
	"github.com/extkit/extbuild/internal/logging"
	"github.com/extkit/extbuild/internal/pipeline"
	"github.com/extkit/extbuild/internal/stages"
	"github.com/spf13/cobra"
)

// runPipeline loads the project configuration and runs command against it.
func runPipeline(cmd *cobra.Command, command pipeline.Command) error {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: verbose})
	ws := stages.New(dir, cfg, stages.Options{
		Runner:   &gateway.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()},
		Scripts:  &gateway.ShellRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()},
		Progress: cmd.ErrOrStderr(),
		Logger:   logger,
	})

	p, err := pipeline.Plan(command, ws)
	if err != nil {
		return err
	}
	logger.Debug("planned", "pipeline", string(p.Kind), "stages", strings.Join(p.Names(), ","))

	start := time.Now()
	if err := pipeline.Run(cmd.Context(), p, logger); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n",
		successStyle.Render("✓ "+string(p.Kind)+" done"),
		mutedStyle.Render("("+time.Since(start).Round(time.Millisecond).String()+")"))
	return nil
}
