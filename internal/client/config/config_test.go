package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8080", c.ServerURL)
	assert.Equal(t, "sxclient.db", c.DBPath)
	assert.Equal(t, models.VariantOwner, c.Variant)
	assert.Equal(t, ".", c.ExportDir)
	assert.Equal(t, "127.0.0.1:8090", c.ListenAddr)
	assert.Zero(t, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func stubEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := envLookup
	envLookup = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	t.Cleanup(func() { envLookup = orig })
}

func TestLoadConfig_DefaultsAndCommand(t *testing.T) {
	stubEnv(t, nil)

	cfg, rest, err := LoadConfig([]string{"rename", "a1"})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, []string{"rename", "a1"}, rest)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://from-json:1",
		"db_path": "json.db",
		"variant": "public",
		"request_timeout": "5s"
	}`), 0o600))

	stubEnv(t, map[string]string{
		"SX_BASE_URL": "http://from-env:2",
		"SX_API_KEY":  "secret",
	})

	cfg, rest, err := LoadConfig([]string{"-c", path, "-s", "http://from-flag:3", "list"})
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:3", cfg.ServerURL)
	assert.Equal(t, "json.db", cfg.DBPath)
	assert.Equal(t, models.VariantPublic, cfg.Variant)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, []string{"list"}, rest)
}

func TestLoadConfig_EnvOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url": "http://from-json:1"}`), 0o600))

	stubEnv(t, map[string]string{"SX_BASE_URL": "http://from-env:2", "SX_CLIENT_DB": "env.db"})

	cfg, _, err := LoadConfig([]string{"-config=" + path})
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.ServerURL)
	assert.Equal(t, "env.db", cfg.DBPath)
}

func TestLoadConfig_Errors(t *testing.T) {
	stubEnv(t, nil)

	_, _, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")

	_, _, err = LoadConfig([]string{"-v", "admin"})
	require.ErrorIs(t, err, models.ErrUnknownVariant)
}
