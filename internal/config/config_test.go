package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ACTIVITIES_CONFIG_PATH",
		"ACTIVITIES_SERVER_HOST",
		"ACTIVITIES_SERVER_PORT",
		"ACTIVITIES_DB_PATH",
		"ACTIVITIES_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.DB.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACTIVITIES_SERVER_HOST", "127.0.0.1")
	t.Setenv("ACTIVITIES_SERVER_PORT", "9090")
	t.Setenv("ACTIVITIES_DB_PATH", "/tmp/activities.db")
	t.Setenv("ACTIVITIES_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.Addr())
	require.Equal(t, "/tmp/activities.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACTIVITIES_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 10.0.0.5
  port: 7000
log:
  level: warn
`), 0o600))
	t.Setenv("ACTIVITIES_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "10.0.0.5:7000", cfg.Addr())
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600))
	t.Setenv("ACTIVITIES_CONFIG_PATH", path)
	t.Setenv("ACTIVITIES_SERVER_PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7100, cfg.Server.Port)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACTIVITIES_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
}
