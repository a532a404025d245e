package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "extbuild", CLIName())
	assert.Equal(t, "EXTBUILD", EnvPrefix())
	assert.NotEmpty(t, UserAgent())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "EXTBUILD_DIR", EnvVar("dir"))
	assert.Equal(t, "EXTBUILD_DATABASE_HOST", EnvVar("database_host"))
}
