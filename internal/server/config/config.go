// Package config handles configuration for the catalog server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"github.com/ktpm/catalog/internal/common"
)

// DefaultSecretKey is a development-only signing key. The server warns when
// it is still in use.
const DefaultSecretKey = "dev-secret-change-me"

// Config holds runtime settings for the catalog server.
//
// Fields:
//   - HTTPAddr: bind address for the REST API.
//   - GRPCAddr: bind address for the gRPC health/reflection endpoint; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory stores.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionTTL: lifetime of a session token and of its cookie, fixed at 24h.
//   - CookieName / CookieSecure: session cookie settings.
//   - PublicPrefix: path prefix that bypasses the session gate.
//   - BcryptCost: work factor for password hashes.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr     string
	GRPCAddr     string
	DatabaseDSN  string
	SecretKey    string
	SessionTTL   time.Duration
	CookieName   string
	CookieSecure bool
	PublicPrefix string
	BcryptCost   int
	LogLevel     string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ""
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.SessionTTL = 24 * time.Hour
	c.CookieName = common.SessionCookieName
	c.CookieSecure = true
	c.PublicPrefix = "/auth/"
	c.BcryptCost = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
