package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.SlowRequest != 200*time.Millisecond {
		t.Errorf("SlowRequest = %v, want 200ms", cfg.SlowRequest)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("RateLimit = %d, want 10", cfg.RateLimit)
	}
	if cfg.Catalog.MaxConns != 4 {
		t.Errorf("Catalog.MaxConns = %d, want 4", cfg.Catalog.MaxConns)
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestParse_ReadsPrefixedVariables(t *testing.T) {
	t.Setenv("BEAUTRIP_ADDR", ":9000")
	t.Setenv("BEAUTRIP_SLOW_QUERY", "250ms")
	t.Setenv("BEAUTRIP_CATALOG_URL", "postgres://localhost/catalog")
	t.Setenv("BEAUTRIP_SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("BEAUTRIP_EMAIL_RESEND_API_KEY", "re_test")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.SlowQuery != 250*time.Millisecond {
		t.Errorf("SlowQuery = %v", cfg.SlowQuery)
	}
	if cfg.Catalog.URL != "postgres://localhost/catalog" {
		t.Errorf("Catalog.URL = %q", cfg.Catalog.URL)
	}
	if cfg.Supabase.URL != "https://example.supabase.co" {
		t.Errorf("Supabase.URL = %q", cfg.Supabase.URL)
	}
	if cfg.Email.ResendAPIKey != "re_test" {
		t.Errorf("Email.ResendAPIKey = %q", cfg.Email.ResendAPIKey)
	}
}

func TestParse_ProductionRequiresCSRFKey(t *testing.T) {
	t.Setenv("BEAUTRIP_ENV", "production")
	_, err := Parse()
	if !errors.Is(err, ErrCSRFKeyRequired) {
		t.Fatalf("err = %v, want ErrCSRFKeyRequired", err)
	}

	t.Setenv("BEAUTRIP_CSRF_KEY", validKey)
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse with key: %v", err)
	}
	key, generated, err := cfg.CSRFKey()
	if err != nil || generated {
		t.Fatalf("CSRFKey = generated %v, err %v", generated, err)
	}
	if len(key) != 32 || key[31] != 0x1f {
		t.Errorf("unexpected key bytes: %x", key)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad key", func(c *Config) { c.CSRFKeyHex = "zz" }, "64 hex characters"},
		{"short key", func(c *Config) { c.CSRFKeyHex = "abcd" }, "64 hex characters"},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }, "RATE_LIMIT"},
		{"zero outbox interval", func(c *Config) { c.OutboxInterval = 0 }, "OUTBOX_INTERVAL"},
		{"negative outbox interval", func(c *Config) { c.OutboxInterval = -time.Second }, "OUTBOX_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Env: "development", DBPath: "x.db", RateLimit: 10, OutboxInterval: time.Minute}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParse_RejectsZeroOutboxInterval(t *testing.T) {
	t.Setenv("BEAUTRIP_OUTBOX_INTERVAL", "0s")
	if _, err := Parse(); err == nil || !strings.Contains(err.Error(), "OUTBOX_INTERVAL") {
		t.Fatalf("err = %v, want an OUTBOX_INTERVAL error", err)
	}
}

func TestCSRFKey_GeneratedOutsideProduction(t *testing.T) {
	cfg := Config{Env: "development"}
	key, generated, err := cfg.CSRFKey()
	if err != nil {
		t.Fatalf("CSRFKey: %v", err)
	}
	if !generated || len(key) != 32 {
		t.Fatalf("generated = %v, len = %d", generated, len(key))
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BEAUTRIP_LOG_FORMAT=json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BEAUTRIP_LOG_FORMAT", "")
	os.Unsetenv("BEAUTRIP_LOG_FORMAT")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	os.Unsetenv("BEAUTRIP_LOG_FORMAT")
}
