// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings for the mint service.
type Config struct {
	Port            int    `env:"PORT" envDefault:"8080"`
	DatabasePath    string `env:"DATABASE_PATH" envDefault:"./luckymint.db"`
	MintCooldownSec int    `env:"MINT_COOLDOWN_SECONDS" envDefault:"60"`
	MintFee         uint64 `env:"MINT_FEE" envDefault:"10"`
	AssetKind       string `env:"ASSET_KIND" envDefault:"LUCKY"`
	RecentMints     int    `env:"RECENT_MINTS_LIMIT" envDefault:"100"`
	Verbose         bool   `env:"LOG_VERBOSE" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// MintCooldown returns the cooldown as a duration.
func (c Config) MintCooldown() time.Duration {
	return time.Duration(c.MintCooldownSec) * time.Second
}
