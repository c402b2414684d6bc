package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "HDIDASH_HOST", "HDIDASH_DATA_DIR", "HDIDASH_SNAPSHOT", "HDIDASH_LOG_LEVEL", "HDIDASH_CACHE_SIZE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "", cfg.Snapshot)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 256, cfg.CacheSize)
	assert.Equal(t, "0.0.0.0:10000", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8050")
	t.Setenv("HDIDASH_HOST", "127.0.0.1")
	t.Setenv("HDIDASH_SNAPSHOT", "/tmp/hdi.sqlite")
	t.Setenv("HDIDASH_CACHE_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8050", cfg.Addr())
	assert.Equal(t, "/tmp/hdi.sqlite", cfg.Snapshot)
	assert.Equal(t, 0, cfg.CacheSize)
}

func TestLoadBadPort(t *testing.T) {
	t.Setenv("PORT", "not-an-int")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), "got %v", err)

	t.Setenv("PORT", "70000")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestValidateNeedsSource(t *testing.T) {
	err := Config{Port: 80}.Validate()
	require.Error(t, err)
	assert.NoError(t, Config{Port: 80, Snapshot: "x.sqlite"}.Validate())
}
