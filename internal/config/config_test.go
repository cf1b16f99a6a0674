package config

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"15m", 15 * time.Minute},
		{"1h", time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"900", 900 * time.Second},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.input)
		if err != nil {
			t.Fatalf("parseDuration(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("parseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, input := range []string{"xd", "abc", ""} {
		if _, err := parseDuration(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "")
	t.Setenv("JWT_EXPIRES_IN", "")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "")
	t.Setenv("SALT_ROUNDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("AccessTokenTTL default = %v, want 15m", cfg.AccessTokenTTL)
	}
	if cfg.RegisterTokenTTL != 24*time.Hour {
		t.Fatalf("RegisterTokenTTL default = %v, want 1d", cfg.RegisterTokenTTL)
	}
	if cfg.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("RefreshTokenTTL default = %v, want 7d", cfg.RefreshTokenTTL)
	}
	if cfg.SaltRounds != 10 {
		t.Fatalf("SaltRounds default = %d, want 10", cfg.SaltRounds)
	}
	if cfg.Production {
		t.Fatal("Production should default to false")
	}
}
