package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HUF_PORT", "HUF_DATABASE_URL", "HUF_LOG_LEVEL", "HUF_MAX_UPLOAD", "HUF_SERVER_URL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, int64(defaultMaxUpload), cfg.MaxUpload)
	require.Equal(t, "http://localhost:8080", cfg.ServerURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HUF_PORT", "9000")
	t.Setenv("HUF_DATABASE_URL", "postgres://huf@localhost/huf")
	t.Setenv("HUF_LOG_LEVEL", "debug")
	t.Setenv("HUF_MAX_UPLOAD", "1024")
	t.Setenv("HUF_SERVER_URL", "http://huf:9000")

	cfg := Load()
	require.Equal(t, Config{
		Port:        "9000",
		DatabaseURL: "postgres://huf@localhost/huf",
		LogLevel:    "debug",
		MaxUpload:   1024,
		ServerURL:   "http://huf:9000",
	}, cfg)
}

func TestLoadIgnoresBadUploadLimit(t *testing.T) {
	t.Setenv("HUF_MAX_UPLOAD", "-5")
	require.Equal(t, int64(defaultMaxUpload), Load().MaxUpload)
}
