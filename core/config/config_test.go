package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "America/El_Salvador", cfg.App.DefaultTimezone)
	assert.Equal(t, 2*time.Second, cfg.App.CallbackRedirectDelay)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.GoogleAPI.Configured())
	assert.False(t, cfg.Storage.Configured())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("GOOGLE_API_CLIENT_ID", "client")
	t.Setenv("GOOGLE_API_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_API_REDIRECT_URI", "http://localhost/auth/callback")
	t.Setenv("CACHE_LIST_TTL", "5s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.GoogleAPI.Configured())
	assert.Equal(t, 5*time.Second, cfg.Cache.ListTTL)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  default_timezone: Europe/Madrid\nworker:\n  concurrency: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Madrid", cfg.App.DefaultTimezone)
	assert.Equal(t, 2, cfg.Worker.Concurrency)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInitAndGet(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Init("")
	require.NoError(t, err)

	got, ok := GetSafe()
	assert.True(t, ok)
	assert.Same(t, cfg, got)
	assert.Same(t, cfg, Get())
}
