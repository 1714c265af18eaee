// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string `env:"SERVER_HOST,default=0.0.0.0"`
	Port            int    `env:"SERVER_PORT,default=8080"`
	ReadTimeoutSec  int    `env:"SERVER_READ_TIMEOUT,default=15"`
	WriteTimeoutSec int    `env:"SERVER_WRITE_TIMEOUT,default=60"`
	AllowedOrigins  string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	RateLimitRPS    int    `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst  int    `env:"RATE_LIMIT_BURST,default=40"`
}

// DatabaseConfig holds persistence settings. An empty DSN selects the
// in-memory store.
type DatabaseConfig struct {
	Driver string `env:"DATABASE_DRIVER,default=postgres"`
	DSN    string `env:"DATABASE_URL"`
}

// AuthConfig holds token issuance settings. JWTSecret has no default on
// purpose: a missing secret is a configuration error surfaced at startup.
type AuthConfig struct {
	JWTSecret    string `env:"JWT_SECRET"`
	TokenTTLHrs  int    `env:"TOKEN_TTL_HOURS,default=24"`
	CookieName   string `env:"AUTH_COOKIE_NAME,default=token"`
	CookieSecure bool   `env:"AUTH_COOKIE_SECURE,default=false"`
}

// GeneratorConfig holds settings for the external text-generation service.
type GeneratorConfig struct {
	BaseURL string `env:"GENERATOR_BASE_URL,default=https://api.openai.com/v1"`
	APIKey  string `env:"GENERATOR_API_KEY"`
	Model   string `env:"GENERATOR_MODEL,default=gpt-4o-mini"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level      string `env:"LOG_LEVEL,default=info"`
	Format     string `env:"LOG_FORMAT,default=json"`
	Output     string `env:"LOG_OUTPUT,default=stdout"`
	FilePrefix string `env:"LOG_FILE_PREFIX,default=scholarai"`
}

// Config aggregates all sections.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
}

// Load reads configuration from the environment, honouring a .env file for
// local runs, and validates required settings.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTLHrs <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.Database.DSN != "" && c.Database.Driver == "" {
		return fmt.Errorf("DATABASE_DRIVER is required when DATABASE_URL is set")
	}
	return nil
}
