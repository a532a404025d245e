package gateway

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

func TestCmdString(t *testing.T) {
	tests := []struct {
		cmd  Cmd
		want string
	}{
		{Cmd{Name: "npm"}, "npm"},
		{Cmd{Name: "npm", Args: []string{"ci"}}, "npm ci"},
		{Cmd{Name: "php", Args: []string{"install/cli.php", "-a", "step1"}}, "php install/cli.php -a step1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cmd.String())
	}
}

func TestExecRunnerRunStreams(t *testing.T) {
	requireSh(t)

	var out bytes.Buffer
	r := &ExecRunner{Stdout: &out, Stderr: &out}
	err := r.Run(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "echo hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestExecRunnerRunQuiet(t *testing.T) {
	requireSh(t)

	var out bytes.Buffer
	r := &ExecRunner{Stdout: &out, Stderr: &out}
	err := r.Run(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "echo hello"}, Quiet: true})
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestExecRunnerRunFailure(t *testing.T) {
	requireSh(t)

	var out bytes.Buffer
	r := &ExecRunner{Stdout: &out, Stderr: &out}
	dir := t.TempDir()
	err := r.Run(context.Background(), Cmd{
		Name:  "sh",
		Args:  []string{"-c", "echo boom >&2; exit 3"},
		Dir:   dir,
		Quiet: true,
	})

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 3, te.ExitCode)
	assert.Equal(t, "boom", te.Output)
	assert.Equal(t, dir, te.Dir)
	assert.Contains(t, err.Error(), "exited with status 3")
	assert.Contains(t, err.Error(), "boom")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := &ExecRunner{}
	err := r.Run(context.Background(), Cmd{Name: "extbuild-definitely-missing-tool"})

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, -1, te.ExitCode)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunnerOutput(t *testing.T) {
	requireSh(t)

	r := &ExecRunner{}
	out, err := r.Output(context.Background(), Cmd{
		Name:  "sh",
		Args:  []string{"-c", "cat; echo noise >&2"},
		Stdin: strings.NewReader(`{"chunks":{}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"chunks":{}}`, string(out))
}

func TestExecRunnerDirAndEnv(t *testing.T) {
	requireSh(t)

	dir := t.TempDir()
	r := &ExecRunner{}
	out, err := r.Output(context.Background(), Cmd{
		Name: "sh",
		Args: []string{"-c", `pwd; printf %s "$EXTBUILD_TEST"`},
		Dir:  dir,
		Env:  []string{"EXTBUILD_TEST=value"},
	})
	require.NoError(t, err)

	lines := strings.SplitN(string(out), "\n", 2)
	require.Len(t, lines, 2)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(lines[0])
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "value", lines[1])
}
