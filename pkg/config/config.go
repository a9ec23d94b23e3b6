// Package config loads the tunable parameters of the search and game
// engine from YAML, following the same viper-backed loader shape used
// throughout the retrieval pack's reinforcement-learning configuration.
package config

import (
	"fmt"

	"github.com/pbnjay/memory"
	"github.com/spf13/viper"
)

// GameParameters are the compile-time bounds of the data model, loadable
// so a deployment can tune difficulty without a rebuild.
type GameParameters struct {
	MinLives    uint32 `yaml:"min_lives" mapstructure:"min_lives"`
	MaxLives    uint32 `yaml:"max_lives" mapstructure:"max_lives"`
	MinShells   int    `yaml:"min_shells" mapstructure:"min_shells"`
	MaxShells   int    `yaml:"max_shells" mapstructure:"max_shells"`
	MinItemDraw int    `yaml:"min_item_draw" mapstructure:"min_item_draw"`
	MaxItemDraw int    `yaml:"max_item_draw" mapstructure:"max_item_draw"`
}

// DefaultGameParameters matches the spec's compile-time constants.
func DefaultGameParameters() GameParameters {
	return GameParameters{
		MinLives:    2,
		MaxLives:    4,
		MinShells:   2,
		MaxShells:   8,
		MinItemDraw: 2,
		MaxItemDraw: 5,
	}
}

// SearchConfig tunes the expectiminimax search.
type SearchConfig struct {
	ShallowDepth      int     `yaml:"shallow_depth" mapstructure:"shallow_depth"`
	TimeLimitSeconds  float64 `yaml:"time_limit_seconds" mapstructure:"time_limit_seconds"`
	Epsilon           float64 `yaml:"epsilon" mapstructure:"epsilon"`
	CacheCapacity     int     `yaml:"cache_capacity" mapstructure:"cache_capacity"`
	CacheCapacityAuto bool    `yaml:"cache_capacity_auto" mapstructure:"cache_capacity_auto"`
}

// DefaultSearchConfig matches the spec's MAX_SHALLOW_DEPTH/TIME_LIMIT/
// EPSILON constants, with cache capacity sized automatically from the
// host's available memory unless overridden.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		ShallowDepth:      3,
		TimeLimitSeconds:  30.0,
		Epsilon:           1e-10,
		CacheCapacityAuto: true,
	}
}

// ResolvedCacheCapacity returns the configured cache capacity, computing an
// adaptive default from system memory when CacheCapacityAuto is set: one
// entry budgeted per 256 bytes of available RAM, capped at the 5,000,000
// entry ceiling the spec allows.
func (c SearchConfig) ResolvedCacheCapacity() int {
	const ceiling = 5_000_000
	if !c.CacheCapacityAuto {
		if c.CacheCapacity <= 0 {
			return ceiling
		}
		if c.CacheCapacity > ceiling {
			return ceiling
		}
		return c.CacheCapacity
	}
	available := memory.FreeMemory()
	if available == 0 {
		return ceiling / 10
	}
	budgeted := int(available / 256)
	if budgeted <= 0 || budgeted > ceiling {
		return ceiling
	}
	return budgeted
}

// Config bundles everything loadable from a single YAML file.
type Config struct {
	Game   GameParameters `yaml:"game" mapstructure:"game"`
	Search SearchConfig   `yaml:"search" mapstructure:"search"`
}

// Default returns compiled-in defaults, used when no YAML file is present.
func Default() Config {
	return Config{Game: DefaultGameParameters(), Search: DefaultSearchConfig()}
}

// FromYaml loads a Config from the given YAML file path, filling any
// unset fields with Default()'s values.
func FromYaml(path string) (Config, error) {
	cfg := Default()

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
