package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Cmd describes one external tool invocation.
type Cmd struct {
	Name  string
	Args  []string
	Dir   string
	Env   []string // appended to the process environment
	Stdin io.Reader
	// Quiet suppresses streaming; output is still captured for diagnostics.
	Quiet bool
}

// String renders the command line for logs and errors.
func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external commands.
type Runner interface {
	// Run executes the command and waits for it to finish.
	Run(ctx context.Context, cmd Cmd) error
	// Output executes the command and returns its standard output.
	Output(ctx context.Context, cmd Cmd) ([]byte, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stdout and Stderr receive streamed output; default os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns an ExecRunner streaming to the process stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes cmd, streaming its output unless cmd.Quiet is set.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) error {
	c := r.command(ctx, cmd)

	var captured bytes.Buffer
	if cmd.Quiet {
		c.Stdout = &captured
		c.Stderr = &captured
	} else {
		c.Stdout = io.MultiWriter(r.stdout(), &captured)
		c.Stderr = io.MultiWriter(r.stderr(), &captured)
	}

	if err := c.Run(); err != nil {
		return newToolError(cmd, err, captured.Bytes())
	}
	return nil
}

// Output executes cmd and returns what it wrote to stdout. Stderr is kept
// for the error diagnostics only.
func (r *ExecRunner) Output(ctx context.Context, cmd Cmd) ([]byte, error) {
	c := r.command(ctx, cmd)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		return nil, newToolError(cmd, err, stderr.Bytes())
	}
	return stdout.Bytes(), nil
}

func (r *ExecRunner) command(ctx context.Context, cmd Cmd) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = cmd.Stdin
	return c
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

func newToolError(cmd Cmd, err error, output []byte) *ToolError {
	te := &ToolError{
		Command:  cmd.String(),
		Dir:      cmd.Dir,
		ExitCode: -1,
		Output:   strings.TrimSpace(string(output)),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		te.ExitCode = exitErr.ExitCode()
	}
	return te
}

// ToolError reports a failed external tool invocation.
type ToolError struct {
	Command  string
	Dir      string
	ExitCode int // -1 when the process never ran
	Output   string
	Err      error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Command)
	if e.Dir != "" {
		fmt.Fprintf(&b, " (in %s)", e.Dir)
	}
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " exited with status %d", e.ExitCode)
	} else {
		fmt.Fprintf(&b, " failed: %v", e.Err)
	}
	if e.Output != "" {
		b.WriteString(":\n")
		b.WriteString(e.Output)
	}
	return b.String()
}

func (e *ToolError) Unwrap() error { return e.Err }
