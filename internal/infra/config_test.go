package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.QuotaWeekStart != time.Monday {
		t.Fatalf("QuotaWeekStart = %s, want Monday", cfg.QuotaWeekStart)
	}
	if cfg.QuotaFailOpen {
		t.Fatalf("QuotaFailOpen = true, want false by default")
	}
	if cfg.SearchMaxResults != 20 {
		t.Fatalf("SearchMaxResults = %d, want 20", cfg.SearchMaxResults)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("QUOTA_WEEK_START", "Sunday")
	t.Setenv("QUOTA_FAIL_OPEN", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.QuotaWeekStart != time.Sunday {
		t.Fatalf("QuotaWeekStart = %s, want Sunday", cfg.QuotaWeekStart)
	}
	if !cfg.QuotaFailOpen {
		t.Fatalf("QuotaFailOpen = false, want true")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://staging.example.com" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error without JWT_SECRET")
	}
}

func TestLoadConfigInvalidWeekday(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("QUOTA_WEEK_START", "someday")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig() expected error for invalid QUOTA_WEEK_START")
	}
}
