package bundler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/extkit/extbuild/internal/gateway"
	"github.com/extkit/extbuild/internal/gateway/gatewaytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleConfig(t *testing.T) {
	cfg := ModuleConfig("custom-module", "build/assets/transpiled")

	assert.Equal(t, []string{"init", "module-custom-module"}, cfg.ChunkOrder)
	assert.Equal(t, []string{"custom/modules/custom-module/src/**/*.js"}, cfg.ChunkPatterns["module-custom-module"])
	assert.Empty(t, cfg.ChunkPatterns["init"])
	assert.Equal(t, []string{"src/files/client/custom/modules/custom-module/res/templates"}, cfg.TemplateDirs)
}

func TestExternalBuild(t *testing.T) {
	var got Config
	rec := &gatewaytest.Recorder{
		Stdout: func(cmd gateway.Cmd, stdin []byte) []byte {
			require.NoError(t, json.Unmarshal(stdin, &got))
			return []byte(`{"chunks": {"init": "i();", "module-m": "m();"}, "templates": "<tpl>"}`)
		},
	}
	b := &External{Runner: rec, Command: []string{"node", "js/bundle.mjs"}, Dir: "/project"}

	out, err := b.Build(context.Background(), ModuleConfig("m", "build/assets/transpiled"))
	require.NoError(t, err)

	assert.Equal(t, "i();", out.Chunks["init"])
	assert.Equal(t, "m();", out.Chunks["module-m"])
	assert.Equal(t, "<tpl>", out.Templates)
	assert.Equal(t, "m", got.ModuleID)
	assert.Equal(t, []string{"node js/bundle.mjs"}, rec.Lines())
	assert.Equal(t, "/project", rec.Commands()[0].Dir)
}

func TestExternalBuildMissingChunk(t *testing.T) {
	rec := &gatewaytest.Recorder{
		Stdout: func(gateway.Cmd, []byte) []byte {
			return []byte(`{"chunks": {"init": ""}}`)
		},
	}
	b := &External{Runner: rec, Command: []string{"bundle"}}

	_, err := b.Build(context.Background(), ModuleConfig("m", "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module-m")
}

func TestExternalBuildTranspileOnly(t *testing.T) {
	rec := &gatewaytest.Recorder{
		Stdout: func(gateway.Cmd, []byte) []byte { return []byte(`{}`) },
	}
	b := &External{Runner: rec, Command: []string{"bundle"}}

	out, err := b.Build(context.Background(), TranspileConfig("m", "out"))
	require.NoError(t, err)
	assert.Empty(t, out.Chunks)
}

func TestExternalBuildErrors(t *testing.T) {
	_, err := (&External{Runner: &gatewaytest.Recorder{}}).Build(context.Background(), Config{})
	require.ErrorIs(t, err, ErrNotConfigured)

	boom := errors.New("boom")
	rec := &gatewaytest.Recorder{Fail: func(gateway.Cmd) error { return boom }}
	_, err = (&External{Runner: rec, Command: []string{"bundle"}}).Build(context.Background(), Config{})
	require.ErrorIs(t, err, boom)

	rec = &gatewaytest.Recorder{Stdout: func(gateway.Cmd, []byte) []byte { return []byte("not json") }}
	_, err = (&External{Runner: rec, Command: []string{"bundle"}}).Build(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding bundler output")
}
