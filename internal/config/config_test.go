package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyro-lang/tyro/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultCacheDir, cfg.CacheDir)
	require.Nil(t, cfg.Color)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tyro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cacheDir: my-cache\nexclude:\n  - '*_gen.ty'\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "my-cache", cfg.CacheDir)
	require.Equal(t, []string{"*_gen.ty"}, cfg.Exclude)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tyro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cacheDir: [unterminated"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
