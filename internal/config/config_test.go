package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Wizard.SearchPageSize != 12 {
		t.Errorf("expected default page size 12, got %d", cfg.Wizard.SearchPageSize)
	}
	if cfg.Wizard.DebounceDelay != 300*time.Millisecond {
		t.Errorf("expected default debounce 300ms, got %v", cfg.Wizard.DebounceDelay)
	}
	if cfg.Maps.Region != "ng" {
		t.Errorf("expected default region ng, got %s", cfg.Maps.Region)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WIZARD_PAGE_SIZE", "30")
	t.Setenv("BACKEND_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://ops.example.com, https://admin.example.com,")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()

	if cfg.Wizard.SearchPageSize != 30 {
		t.Errorf("expected page size 30, got %d", cfg.Wizard.SearchPageSize)
	}
	if cfg.Backend.Timeout != 2*time.Second {
		t.Errorf("expected backend timeout 2s, got %v", cfg.Backend.Timeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://admin.example.com" {
		t.Errorf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected invalid int to fall back to 0, got %d", cfg.Redis.DB)
	}
}
