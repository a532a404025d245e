package composer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/extkit/extbuild/internal/gateway"
	"github.com/extkit/extbuild/internal/gateway/gatewaytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallSkipsWithoutManifest(t *testing.T) {
	rec := &gatewaytest.Recorder{}
	i := &Installer{Runner: rec}

	require.NoError(t, i.Install(context.Background(), t.TempDir(), true))
	assert.Empty(t, rec.Commands())
}

func TestInstallDevToggle(t *testing.T) {
	tests := []struct {
		name       string
		includeDev bool
		want       string
	}{
		{"with dev", true, "composer install --ignore-platform-reqs"},
		{"without dev", false, "composer install --no-dev --ignore-platform-reqs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, Manifest), []byte("{}"), 0o644))

			rec := &gatewaytest.Recorder{}
			i := &Installer{Runner: rec}
			require.NoError(t, i.Install(context.Background(), dir, tt.includeDev))

			require.Len(t, rec.Commands(), 1)
			assert.Equal(t, tt.want, rec.Lines()[0])
			assert.Equal(t, dir, rec.Commands()[0].Dir)
		})
	}
}

func TestInstallCustomBinaryAndFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Manifest), []byte("{}"), 0o644))

	boom := errors.New("exit 1")
	rec := &gatewaytest.Recorder{Fail: func(gateway.Cmd) error { return boom }}
	i := &Installer{Runner: rec, Binary: "/opt/composer.phar"}

	err := i.Install(context.Background(), dir, false)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "/opt/composer.phar", rec.Commands()[0].Name)
}

func TestStripArtifacts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"composer.json", "composer.lock", "Module.php"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	require.NoError(t, StripArtifacts(dir))

	assert.NoFileExists(t, filepath.Join(dir, "composer.json"))
	assert.NoFileExists(t, filepath.Join(dir, "composer.lock"))
	assert.FileExists(t, filepath.Join(dir, "Module.php"))
}
