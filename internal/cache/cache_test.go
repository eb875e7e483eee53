package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tyro-lang/tyro/internal/cache"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/token"
)

func TestGetOnEmptyCacheMisses(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(cache.Hash("var x = 1"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	hash := cache.Hash("var x = y")
	entry := cache.Entry{
		Diagnostics: []diagnostics.Diagnostic{
			{Pos: token.Pos{Line: 1, Column: 9}, Code: diagnostics.ErrCannotResolve, Message: "Could not resolve y"},
		},
		Output: "var x = y",
	}
	require.NoError(t, c.Put(hash, entry))

	got, ok, err := c.Get(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	hash := cache.Hash("var x = 1")
	require.NoError(t, c.Put(hash, cache.Entry{Output: "var x = 1"}))
	require.NoError(t, c.Put(hash, cache.Entry{Output: "var x = 2"}))

	got, ok, err := c.Get(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "var x = 2", got.Output)
}
