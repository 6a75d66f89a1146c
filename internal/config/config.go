// Package config loads server configuration from BEAUTRIP_* environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvProduction is the BEAUTRIP_ENV value that enables production checks.
const EnvProduction = "production"

// Config holds everything cmd/server needs to start.
type Config struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	Env       string `env:"ENV" envDefault:"development"`
	DBPath    string `env:"DB" envDefault:"beautrip.db"`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`

	CSRFKeyHex string `env:"CSRF_KEY"`

	SlowRequest     time.Duration `env:"SLOW_REQUEST" envDefault:"200ms"`
	SlowQuery       time.Duration `env:"SLOW_QUERY" envDefault:"100ms"`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"10"`
	PerfRingSize    int           `env:"PERF_RING_SIZE" envDefault:"2048"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Supabase SupabaseConfig `envPrefix:"SUPABASE_"`
	Email    EmailConfig    `envPrefix:"EMAIL_"`

	AdminLoginID  string `env:"ADMIN_LOGIN" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	OutboxInterval time.Duration `env:"OUTBOX_INTERVAL" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// CatalogConfig points at the hosted Postgres holding treatment_master and hospital_master.
// An empty URL keeps the catalog in the local SQLite database.
type CatalogConfig struct {
	URL             string        `env:"URL"`
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"4"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"30m"`
}

// SupabaseConfig configures the hosted auth provider.
type SupabaseConfig struct {
	URL         string `env:"URL"`
	AnonKey     string `env:"ANON_KEY"`
	JWTSecret   string `env:"JWT_SECRET"`
	RedirectURL string `env:"REDIRECT_URL"`
}

// EmailConfig configures outgoing mail.
type EmailConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	From         string `env:"FROM" envDefault:"BeauTrip <noreply@beautrip.local>"`
}

var (
	ErrCSRFKeyRequired = errors.New("BEAUTRIP_CSRF_KEY is required in production")
	ErrCSRFKeyInvalid  = errors.New("BEAUTRIP_CSRF_KEY must be 64 hex characters (32 bytes)")
)

// Load reads an optional .env file and parses BEAUTRIP_* variables.
// PRE: none
// POST: Returned config has passed Validate
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse builds a Config from the process environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "BEAUTRIP_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c Config) Validate() error {
	if c.CSRFKeyHex == "" {
		if c.IsProduction() {
			return ErrCSRFKeyRequired
		}
	} else if _, err := decodeKey(c.CSRFKeyHex); err != nil {
		return err
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("BEAUTRIP_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.OutboxInterval <= 0 {
		return fmt.Errorf("BEAUTRIP_OUTBOX_INTERVAL must be positive, got %s", c.OutboxInterval)
	}
	if c.DBPath == "" {
		return errors.New("BEAUTRIP_DB must not be empty")
	}
	return nil
}

// IsProduction reports whether production-only checks apply.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// CSRFKey returns the decoded CSRF secret, generating a random one outside production.
// The bool result is true when the key was generated.
func (c Config) CSRFKey() ([]byte, bool, error) {
	if c.CSRFKeyHex != "" {
		key, err := decodeKey(c.CSRFKeyHex)
		return key, false, err
	}
	if c.IsProduction() {
		return nil, false, ErrCSRFKeyRequired
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate csrf key: %w", err)
	}
	return key, true, nil
}

func decodeKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != 32 {
		return nil, ErrCSRFKeyInvalid
	}
	return key, nil
}
