package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults apply without environment", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("Expected port 8080, but got %d", cfg.Port)
		}
		if cfg.MintCooldown() != 60*time.Second {
			t.Errorf("Expected 60s cooldown, but got %v", cfg.MintCooldown())
		}
		if cfg.MintFee != 10 || cfg.AssetKind != "LUCKY" {
			t.Errorf("Unexpected defaults: %+v", cfg)
		}
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("MINT_COOLDOWN_SECONDS", "5")
		t.Setenv("MINT_FEE", "25")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, but got %v", err)
		}
		if cfg.Port != 9090 {
			t.Errorf("Expected port 9090, but got %d", cfg.Port)
		}
		if cfg.MintCooldown() != 5*time.Second {
			t.Errorf("Expected 5s cooldown, but got %v", cfg.MintCooldown())
		}
		if cfg.MintFee != 25 {
			t.Errorf("Expected fee 25, but got %d", cfg.MintFee)
		}
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		t.Setenv("PORT", "not-a-port")
		if _, err := Load(); err == nil {
			t.Fatal("Expected an error for an invalid port, but got nil")
		}
	})
}
