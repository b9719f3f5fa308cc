package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.ListenAddr)
	assert.Equal(t, "portfolio.db", cfg.DatabasePath)
	assert.Equal(t, 24, cfg.Admin.TokenTTLHours)
	assert.Equal(t, 60, cfg.Contact.CooldownSeconds)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.toml")
	content := `
listen_addr = ":9000"
database_path = "/var/lib/portfolio/site.db"
allowed_origins = ["https://example.dev"]
revalidate_url = "https://example.dev/api/revalidate"

[admin]
email = "admin@example.dev"
jwt_secret = "file-secret"
token_ttl_hours = 2

[contact]
cooldown_seconds = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/var/lib/portfolio/site.db", cfg.DatabasePath)
	assert.Equal(t, []string{"https://example.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, "admin@example.dev", cfg.Admin.Email)
	assert.Equal(t, 2, cfg.Admin.TokenTTLHours)
	assert.Equal(t, 30, cfg.Contact.CooldownSeconds)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_LISTEN_ADDR", ":7000")
	t.Setenv("PORTFOLIO_JWT_SECRET", "env-secret")
	t.Setenv("PORTFOLIO_CONTACT_COOLDOWN", "5")
	t.Setenv("FRONTEND_URL", "https://front.example.dev")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "env-secret", cfg.Admin.JWTSecret)
	assert.Equal(t, 5, cfg.Contact.CooldownSeconds)
	assert.Contains(t, cfg.AllowedOrigins, "https://front.example.dev")
}

func TestBadCooldownEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_CONTACT_COOLDOWN", "soon")
	_, err := config.Load("")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
