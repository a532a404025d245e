package gateway

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScriptWritesInDir(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	s := &ShellRunner{Stdout: &out, Stderr: &out, Env: []string{"GREETING=hi"}}

	err := s.RunScript(context.Background(), dir, `printf %s "$GREETING" > out.txt
echo done`)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	assert.Equal(t, "done\n", out.String())
}

func TestRunScriptExitStatus(t *testing.T) {
	var out bytes.Buffer
	s := &ShellRunner{Stdout: &out, Stderr: &out}

	err := s.RunScript(context.Background(), t.TempDir(), "echo failing >&2\nexit 4")

	var te *ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 4, te.ExitCode)
	assert.Equal(t, "failing", te.Output)
	assert.Equal(t, "sh -c echo failing >&2", te.Command)
}

func TestRunScriptParseError(t *testing.T) {
	s := &ShellRunner{}
	err := s.RunScript(context.Background(), t.TempDir(), "if then fi (")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing script")
}
