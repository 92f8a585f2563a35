package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("OPERATOR_PRIVATE_KEY", "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	t.Setenv("DATABASE_URL", "postgres://localhost/gatekeeper")
	t.Setenv("ALCHEMY_API_KEY", "key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indexer:\n  base_url: https://polygon-mumbai.g.alchemy.com\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Server.SecureCookies)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "secret", cfg.Session.Secret)
	assert.Equal(t, "key", cfg.Indexer.APIKey)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  addr: \":8080\"\n  secure_cookies: false\nsession:\n  ttl: 1h\nindexer:\n  base_url: https://polygon-mainnet.g.alchemy.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Server.SecureCookies)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
}

func TestLoad_MissingSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_SECRET", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indexer:\n  base_url: https://x\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "SESSION_SECRET")
}
