package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "claude-opus-4-5-20250514", cfg.Model)
	assert.Equal(t, 100_000, cfg.MaxDiffSize)
	assert.Equal(t, 8192, cfg.MaxTokens)
	assert.Equal(t, 120*time.Second, cfg.APITimeout)
	assert.Equal(t, "markdown", cfg.Format)
	assert.False(t, cfg.RedactSecrets)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileEnvOverridePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "model: from-file\nmax_diff_size: 5000\napi_timeout: 30s\nformat: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("REVIEWPACK_MAX_DIFF_SIZE", "7000")

	cfg, err := Load(path, map[string]string{"model": "from-flag", "format": ""})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Model, "flag beats file")
	assert.Equal(t, 7000, cfg.MaxDiffSize, "env beats file")
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, "json", cfg.Format, "empty override is ignored")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unterminated"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := Load(path, map[string]string{"max_diff_size": "-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_diff_size")

	_, err = Load(path, map[string]string{"format": "sarif"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestInit_WritesAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	written, err := Init(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Default().Model, cfg.Model)
	assert.Equal(t, Default().APITimeout, cfg.APITimeout)

	_, err = Init(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := Set(path, "max_diff_size", "2500")
	require.NoError(t, err)
	_, err = Set(path, "model", "claude-sonnet-4-5")
	require.NoError(t, err)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2500, cfg.MaxDiffSize)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Model)
}

func TestSet_UnknownKey(t *testing.T) {
	_, err := Set(filepath.Join(t.TempDir(), "config.yaml"), "nonexistent", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestSet_InvalidValue(t *testing.T) {
	_, err := Set(filepath.Join(t.TempDir(), "config.yaml"), "max_diff_size", "notanumber")
	require.Error(t, err)
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "api_timeout")
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "reviewpack"), dir)
}
