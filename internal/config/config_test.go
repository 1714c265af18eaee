package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "*", cfg.Server.AllowedOrigins)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Empty(t, cfg.Database.DSN)
	require.Equal(t, 24, cfg.Auth.TokenTTLHrs)
	require.Equal(t, "token", cfg.Auth.CookieName)
	require.Equal(t, "https://api.openai.com/v1", cfg.Generator.BaseURL)
	require.Equal(t, "gpt-4o-mini", cfg.Generator.Model)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/scholarai")
	t.Setenv("TOKEN_TTL_HOURS", "48")
	t.Setenv("GENERATOR_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "postgres://localhost/scholarai", cfg.Database.DSN)
	require.Equal(t, 48, cfg.Auth.TokenTTLHrs)
	require.Equal(t, "gpt-4o", cfg.Generator.Model)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "postgres"},
			Auth:     AuthConfig{JWTSecret: "secret", TokenTTLHrs: 24},
		}
	}

	require.NoError(t, base().Validate())

	missingSecret := base()
	missingSecret.Auth.JWTSecret = ""
	require.Error(t, missingSecret.Validate())

	badTTL := base()
	badTTL.Auth.TokenTTLHrs = 0
	require.Error(t, badTTL.Validate())

	badPort := base()
	badPort.Server.Port = 70000
	require.Error(t, badPort.Validate())

	dsnWithoutDriver := base()
	dsnWithoutDriver.Database.DSN = "postgres://localhost/scholarai"
	dsnWithoutDriver.Database.Driver = ""
	require.Error(t, dsnWithoutDriver.Validate())
}
