package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "")
	t.Setenv("PGSSLMODE", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.JWT.AccessTTL != "15m" {
		t.Fatalf("AccessTTL = %q, want 15m", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != "168h" {
		t.Fatalf("RefreshTTL = %q, want 168h", cfg.JWT.RefreshTTL)
	}
	if cfg.Postgres.SSLMode != "disable" {
		t.Fatalf("SSLMode = %q, want disable", cfg.Postgres.SSLMode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://booknest.example.com ,")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.JWT.AccessTTL != "30m" {
		t.Fatalf("AccessTTL = %q, want 30m", cfg.JWT.AccessTTL)
	}
	want := []string{"http://localhost:3000", "https://booknest.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Fatalf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
}
