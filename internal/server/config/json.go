package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ktpm/catalog/internal/flagx"
)

// JsonConfig is the on-disk shape of the config file.
type JsonConfig struct {
	HTTPAddr     string `json:"http_addr"`
	GRPCAddr     string `json:"grpc_addr"`
	DatabaseDSN  string `json:"database_dsn"`
	SecretKey    string `json:"secret_key"`
	CookieName   string `json:"cookie_name"`
	CookieSecure *bool  `json:"cookie_secure"`
	PublicPrefix string `json:"public_prefix"`
	BcryptCost   int    `json:"bcrypt_cost"`
	LogLevel     string `json:"log_level"`
}

// parseJson overlays the file named by -c / -config onto config. Keys that
// are absent from the file leave the current value alone.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CookieName, c.CookieName)
	setString(&config.PublicPrefix, c.PublicPrefix)
	setString(&config.LogLevel, c.LogLevel)
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
