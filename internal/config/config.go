// Package config loads server configuration from an optional TOML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	ListenAddr     string   `toml:"listen_addr"`
	DatabasePath   string   `toml:"database_path"`
	AllowedOrigins []string `toml:"allowed_origins"`
	// RevalidateURL, when set, receives a POST after admin content
	// changes so the frontend can refresh its static pages.
	RevalidateURL    string        `toml:"revalidate_url"`
	RevalidateSecret string        `toml:"revalidate_secret"`
	Admin            AdminConfig   `toml:"admin"`
	Contact          ContactConfig `toml:"contact"`
}

// AdminConfig configures the back-office login.
type AdminConfig struct {
	Email         string `toml:"email"`
	PasswordHash  string `toml:"password_hash"` // bcrypt hash
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// ContactConfig configures the public contact form.
type ContactConfig struct {
	// CooldownSeconds is the per-client wait between submissions.
	// Zero disables throttling.
	CooldownSeconds int `toml:"cooldown_seconds"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		ListenAddr:   ":8081",
		DatabasePath: "portfolio.db",
		Admin: AdminConfig{
			TokenTTLHours: 24,
		},
		Contact: ContactConfig{
			CooldownSeconds: 60,
		},
	}
}

// Load reads the TOML file at path (skipped when path is empty) on top
// of the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORTFOLIO_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PORTFOLIO_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("PORTFOLIO_ADMIN_EMAIL"); v != "" {
		c.Admin.Email = v
	}
	if v := os.Getenv("PORTFOLIO_ADMIN_PASSWORD_HASH"); v != "" {
		c.Admin.PasswordHash = v
	}
	if v := os.Getenv("PORTFOLIO_JWT_SECRET"); v != "" {
		c.Admin.JWTSecret = v
	}
	if v := os.Getenv("PORTFOLIO_CONTACT_COOLDOWN"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORTFOLIO_CONTACT_COOLDOWN: %w", err)
		}
		c.Contact.CooldownSeconds = secs
	}
	if v := os.Getenv("NEXT_REVALIDATION_URL"); v != "" {
		c.RevalidateURL = v
	}
	if v := os.Getenv("REVALIDATION_SECRET"); v != "" {
		c.RevalidateSecret = v
	}
	// Frontend origins keep their historical variable names.
	for _, key := range []string{"FRONTEND_URL", "FRONTEND_URL2"} {
		if v := os.Getenv(key); v != "" {
			c.AllowedOrigins = append(c.AllowedOrigins, v)
		}
	}
	return nil
}
