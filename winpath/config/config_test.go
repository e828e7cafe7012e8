package config

import (
	"os"
	"path/filepath"
	"testing"

	internal "github.com/ZanzyTHEbar/winpath/winpath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNormalizerConfig(t *testing.T) {
	cfg := DefaultNormalizerConfig()
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, internal.DefaultCacheCapacity, cfg.CacheCapacity)
	assert.False(t, cfg.ValidateDriveExistence)
	assert.False(t, cfg.UnicodeNormalize)
	assert.Equal(t, 0, cfg.BatchWorkers)
}

func TestLoadConfigDefaults(t *testing.T) {
	// No config file anywhere on the search path: defaults apply.
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.Normalizer.CacheEnabled)
	assert.Equal(t, internal.DefaultCacheCapacity, cfg.Normalizer.CacheCapacity)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte(`normalizer:
  cacheEnabled: false
  cacheCapacity: 64
  validateDriveExistence: true
  unicodeNormalize: true
  batchWorkers: 4
`)
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Normalizer.CacheEnabled)
	assert.Equal(t, 64, cfg.Normalizer.CacheCapacity)
	assert.True(t, cfg.Normalizer.ValidateDriveExistence)
	assert.True(t, cfg.Normalizer.UnicodeNormalize)
	assert.Equal(t, 4, cfg.Normalizer.BatchWorkers)
}
