package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Ledger.DefaultPageSize != 20 {
		t.Errorf("expected default page size 20, got %d", cfg.Ledger.DefaultPageSize)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.Security.BcryptCost)
	}
	if cfg.RateLimit.LoginWindow != time.Minute {
		t.Errorf("expected 1m login window, got %s", cfg.RateLimit.LoginWindow)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("APP_TIMEZONE", "Europe/Rome")
	t.Setenv("MAX_PAGE_SIZE", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis to be enabled")
	}
	if cfg.JWT.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("expected 30m access expiry, got %s", cfg.JWT.AccessTokenExpiry)
	}
	if cfg.Ledger.MaxPageSize != 100 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.Ledger.MaxPageSize)
	}
	if got := cfg.Ledger.Location().String(); got != "Europe/Rome" {
		t.Errorf("expected Europe/Rome location, got %s", got)
	}
}

func TestLedgerConfig_LocationFallback(t *testing.T) {
	cfg := LedgerConfig{Timezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Errorf("unknown timezone should resolve to UTC, got %s", cfg.Location())
	}
}

func TestServerConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"development", false},
		{"test", false},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := (ServerConfig{Environment: tt.env}).IsProduction(); got != tt.want {
				t.Errorf("IsProduction() = %v, want %v", got, tt.want)
			}
		})
	}
}
