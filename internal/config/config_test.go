package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

const defaultJSON = `{
    // shared defaults
    "host": {
        "repository": "https://github.com/espocrm/espocrm",
        "branch": "stable"
    },
    "database": {
        "host": "db",
        "dbname": "crm",
        "user": "crm",
        "password": "secret"
    },
    "install": {
        "language": "en_US",
        "siteUrl": "http://localhost/site",
        "defaultOwner": "www-data",
        "defaultGroup": "www-data",
        "adminUsername": "admin",
        "adminPassword": "admin-pass",
    },
}`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaultsOnly(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultFile, defaultJSON)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/espocrm/espocrm", cfg.Host.Repository)
	assert.Equal(t, "stable", cfg.Host.Branch)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "Mysql", cfg.Database.Platform)
	assert.Zero(t, cfg.Database.Port)
	assert.Equal(t, "http://localhost/site", cfg.Install.SiteURL)
	assert.Equal(t, "www-data", cfg.Install.DefaultOwner)
	assert.Equal(t, "admin-pass", cfg.Install.AdminPassword)
	assert.Equal(t, "php", cfg.Tools.PHP)
	assert.Equal(t, "composer", cfg.Tools.Composer)
	assert.Empty(t, cfg.Bundler.Command)
}

func TestLoadDeepMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultFile, defaultJSON)
	writeConfig(t, dir, LocalFile, `{
        "database": {"password": "local", "port": 3307},
        "bundler": {"command": ["node", "js/bundle.js"]}
    }`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Database.Password)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "db", cfg.Database.Host, "sibling keys survive the merge")
	assert.Equal(t, "crm", cfg.Database.DBName)
	assert.Equal(t, []string{"node", "js/bundle.js"}, cfg.Bundler.Command)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultFile, defaultJSON)
	t.Setenv("EXTBUILD_DATABASE_HOST", "db.internal")
	t.Setenv("EXTBUILD_TOOLS_PHP", "/usr/bin/php8.2")
	t.Setenv("EXTBUILD_HOST_MIRROR", "https://nexus.internal/github")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "/usr/bin/php8.2", cfg.Tools.PHP)
	assert.Equal(t, "https://nexus.internal/github", cfg.Host.Mirror)
}

func TestLoadMissingDefault(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultFile)
}

func TestLoadMalformedLocal(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultFile, defaultJSON)
	writeConfig(t, dir, LocalFile, `{"database": `)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LocalFile)
}

func TestLoadLegacyHostSection(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultFile, `{
        "espocrm": {"repository": "https://github.com/espocrm/espocrm.git", "branch": "8.4"}
    }`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/espocrm/espocrm.git", cfg.Host.Repository)
	assert.Equal(t, "8.4", cfg.Host.Branch)
}

func TestYAMLRedactsSecrets(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, DefaultFile, defaultJSON)

	cfg, err := Load(dir)
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret")
	assert.NotContains(t, string(out), "admin-pass")

	var doc struct {
		Database map[string]any `yaml:"database"`
		Install  map[string]any `yaml:"install"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "********", doc.Database["password"])
	assert.Equal(t, "http://localhost/site", doc.Install["siteUrl"])

	assert.Equal(t, "secret", cfg.Database.Password, "redaction works on a copy")
}
