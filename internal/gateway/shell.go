package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ShellRunner interprets POSIX shell scripts in-process. External programs
// referenced by a script are executed normally.
type ShellRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // appended to the process environment
}

// RunScript parses and runs script with dir as the working directory.
// A non-zero exit status is reported as a *ToolError.
func (s *ShellRunner) RunScript(ctx context.Context, dir, script string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(script), "script")
	if err != nil {
		return fmt.Errorf("parsing script %q: %w", summary(script), err)
	}

	stdout, stderr := s.Stdout, s.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	var captured bytes.Buffer
	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(append(os.Environ(), s.Env...)...)),
		interp.StdIO(nil, io.MultiWriter(stdout, &captured), io.MultiWriter(stderr, &captured)),
	)
	if err != nil {
		return fmt.Errorf("creating interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		te := &ToolError{
			Command:  "sh -c " + summary(script),
			Dir:      dir,
			ExitCode: -1,
			Output:   strings.TrimSpace(captured.String()),
			Err:      err,
		}
		var status interp.ExitStatus
		if errors.As(err, &status) {
			te.ExitCode = int(status)
		}
		return te
	}
	return nil
}

// summary returns the first line of a script for diagnostics.
func summary(script string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(script), "\n")
	return line
}
