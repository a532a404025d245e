// Package gatewaytest provides a recording gateway.Runner for tests.
package gatewaytest

import (
	"context"
	"io"
	"sync"

	"github.com/extkit/extbuild/internal/gateway"
)

// Recorder is a gateway.Runner that records every command instead of
// executing it.
type Recorder struct {
	// Fail, when set, decides whether a command fails.
	Fail func(cmd gateway.Cmd) error
	// Stdout, when set, produces the output returned by Output.
	Stdout func(cmd gateway.Cmd, stdin []byte) []byte
	// Effect, when set, runs for every successful command; tests use it to
	// emulate filesystem side effects of the real tool.
	Effect func(cmd gateway.Cmd) error

	mu   sync.Mutex
	cmds []gateway.Cmd
}

var _ gateway.Runner = (*Recorder)(nil)

// Run records cmd.
func (r *Recorder) Run(ctx context.Context, cmd gateway.Cmd) error {
	_, err := r.exec(ctx, cmd)
	return err
}

// Output records cmd and returns the configured stdout.
func (r *Recorder) Output(ctx context.Context, cmd gateway.Cmd) ([]byte, error) {
	return r.exec(ctx, cmd)
}

func (r *Recorder) exec(ctx context.Context, cmd gateway.Cmd) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stdin []byte
	if cmd.Stdin != nil {
		data, err := io.ReadAll(cmd.Stdin)
		if err != nil {
			return nil, err
		}
		stdin = data
	}

	r.mu.Lock()
	r.cmds = append(r.cmds, cmd)
	r.mu.Unlock()

	if r.Fail != nil {
		if err := r.Fail(cmd); err != nil {
			return nil, err
		}
	}
	if r.Effect != nil {
		if err := r.Effect(cmd); err != nil {
			return nil, err
		}
	}
	if r.Stdout != nil {
		return r.Stdout(cmd, stdin), nil
	}
	return nil, nil
}

// Commands returns the recorded commands in invocation order.
func (r *Recorder) Commands() []gateway.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gateway.Cmd(nil), r.cmds...)
}

// Lines returns the recorded command lines in invocation order.
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}

// FailOn returns a Fail func failing every command whose line equals line.
func FailOn(line string, err error) func(gateway.Cmd) error {
	return func(cmd gateway.Cmd) error {
		if cmd.String() == line {
			return err
		}
		return nil
	}
}
