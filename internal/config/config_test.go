package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "planwise.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "en-IN", cfg.Format.Locale)
	require.Equal(t, "₹", cfg.Format.Symbol)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PLANWISE_SERVER_PORT", "9090")
	t.Setenv("PLANWISE_DB_PATH", "/tmp/test.db")
	t.Setenv("PLANWISE_LOG_LEVEL", "debug")
	t.Setenv("PLANWISE_CURRENCY_SYMBOL", "$")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/test.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "$", cfg.Format.Symbol)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PLANWISE_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  host: 0.0.0.0\n  port: 3000\ndb:\n  path: custom.db\nformat:\n  locale: en-US\n  symbol: \"$\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("PLANWISE_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "custom.db", cfg.DB.Path)
	require.Equal(t, "en-US", cfg.Format.Locale)
	require.Equal(t, "$", cfg.Format.Symbol)
}
