package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, uint32(4), cfg.Game.MaxLives)
	require.Equal(t, 3, cfg.Search.ShallowDepth)
	require.True(t, cfg.Search.CacheCapacityAuto)
}

func TestFromYamlOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roulette.yaml")
	contents := []byte("game:\n  max_lives: 6\nsearch:\n  shallow_depth: 5\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := FromYaml(path)
	require.NoError(t, err)
	require.Equal(t, uint32(6), cfg.Game.MaxLives)
	require.Equal(t, 5, cfg.Search.ShallowDepth)
	require.Equal(t, uint32(2), cfg.Game.MinLives)
}

func TestResolvedCacheCapacityRespectsCeiling(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.CacheCapacityAuto = false
	cfg.CacheCapacity = 50_000_000
	require.Equal(t, 5_000_000, cfg.ResolvedCacheCapacity())
}
