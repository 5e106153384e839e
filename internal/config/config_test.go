package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "carwash"
password = "from-file"
dbname = "carwash"

[auth]
jwt_secret = "secret"

[booking]
fixed_duration_minutes = 0

[redis]
enabled = true
price_ttl = 60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "default kept")
	assert.Equal(t, 0, cfg.Booking.FixedDurationMinutes)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 60, cfg.Redis.PriceTTL)
	assert.Equal(t, "@every 5m", cfg.Jobs.CompleteSpec)
	assert.Equal(t, "host=db port=5432 user=carwash password=from-file dbname=carwash sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no dbname", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "no jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 70000 }},
		{name: "negative duration", mutate: func(c *Config) { c.Booking.FixedDurationMinutes = -1 }},
		{name: "jobs without spec", mutate: func(c *Config) { c.Jobs.Enabled = true; c.Jobs.CompleteSpec = "" }},
		{name: "rate limit without rps", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DBName = "carwash"
			cfg.Database.User = "carwash"
			cfg.Auth.JWTSecret = "secret"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
