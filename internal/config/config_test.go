package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend = %q, want sqlite", cfg.StorageBackend)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v, want 24h", cfg.TokenDuration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_BACKEND", BackendMongo)
	t.Setenv("TOKEN_DURATION", "2h")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	if cfg.Port != "9000" || cfg.StorageBackend != BackendMongo || cfg.TokenDuration != 2*time.Hour {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{StorageBackend: "oracle", JWTSecret: "x"}
	if err := cfg.Validate(); err == nil {
		t.Error("unknown backend accepted")
	}

	cfg = &Config{StorageBackend: BackendMemory}
	if err := cfg.Validate(); err == nil {
		t.Error("empty JWT secret accepted")
	}
}
