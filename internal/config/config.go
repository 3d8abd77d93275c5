package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const defaultSessionSecret = "session-secret-change-in-production"

type Config struct {
	// Server settings
	Env        string // "development" or "production"
	ServerAddr string
	BaseURL    string

	// Session settings
	SessionSecret string
	SessionMaxAge int // seconds

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string // Database connection string (DSN or path)

	// OAuth2 identity provider
	OAuthBaseURL      string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTimeout      time.Duration // outbound call timeout (default: 15s)

	// ForceOAuthLogin disables the development login bypass
	ForceOAuthLogin bool

	// Metrics
	MetricsEnabled bool
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	env := getEnv("ENV", EnvDevelopment)

	// Development defaults to a local sqlite database
	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "dev.db")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		Env:           env,
		ServerAddr:    getEnv("SERVER_ADDR", ":5000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:5000"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 3600),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		OAuthBaseURL:      getEnv("OAUTH2_BASE_URL", "https://meta.wikimedia.org/w/rest.php"),
		OAuthClientID:     getEnv("OAUTH2_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("OAUTH2_CLIENT_SECRET", ""),
		OAuthTimeout:      getEnvDuration("OAUTH_TIMEOUT", 15*time.Second),

		ForceOAuthLogin: getEnvBool("FORCE_OAUTH_LOGIN", false),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate checks settings that must not reach production with defaults.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid ENV: %s (must be: development, production)", c.Env)
	}

	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}

	if !c.IsProduction() {
		return nil
	}

	if c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.OAuthClientID == "" || c.OAuthClientSecret == "" {
		return errors.New(
			"OAUTH2_CLIENT_ID and OAUTH2_CLIENT_SECRET are required in production",
		)
	}
	return nil
}

// UseLoginBypass reports whether the development login bypass is active:
// development only, and not when the real flow is explicitly forced.
func (c *Config) UseLoginBypass() bool {
	return !c.IsProduction() && !c.ForceOAuthLogin
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
