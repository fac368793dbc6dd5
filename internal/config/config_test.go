package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("FANOUS_API_URL", "")
	t.Setenv("FANOUS_STORE", "")
	t.Setenv("FANOUS_DEBUG", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4000/api", cfg.APIURL)
	require.True(t, strings.HasSuffix(cfg.StorePath, "fanous.db"))
	require.False(t, cfg.Debug)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("FANOUS_API_URL", "https://sync.internal/api")
	t.Setenv("FANOUS_STORE", "/tmp/fanous-test.json")
	t.Setenv("FANOUS_DEBUG", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	require.Equal(t, "https://sync.internal/api", cfg.APIURL)
	require.Equal(t, "/tmp/fanous-test.json", cfg.StorePath)
	require.True(t, cfg.Debug)
}
