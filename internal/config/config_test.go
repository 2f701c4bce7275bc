package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SLOT_HOLD_SECONDS", "")
	t.Setenv("MP_ACCESS_TOKEN", "")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30, cfg.SlotHoldSeconds)
	assert.False(t, cfg.PaymentsEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SLOT_HOLD_SECONDS", "45")
	t.Setenv("MP_ACCESS_TOKEN", "TEST-123")
	t.Setenv("CORS_ORIGINS", "https://painel.example, ,https://app.example")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 45, cfg.SlotHoldSeconds)
	assert.True(t, cfg.PaymentsEnabled())
	assert.Equal(t, []string{"https://painel.example", "https://app.example"}, cfg.CORSOrigins)
}

func TestLoadFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server_port: \"7070\"\nstorage:\n  bucket: ${TEST_BUCKET}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TEST_BUCKET", "salon-media")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr())
	assert.Equal(t, "salon-media", cfg.Storage.Bucket)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
