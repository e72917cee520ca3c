// Package config loads typed application configuration from .env files and
// environment variables, and assembles database connection strings per
// driver.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App    AppConfig
	DB     DBConfig
	Health HealthConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"keel"`
	Env   string `env:"APP_ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	Port  string `env:"APP_PORT" envDefault:"8000"`
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Database string `env:"DB_DATABASE"`
	Username string `env:"DB_USERNAME" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type HealthConfig struct {
	Interval time.Duration `env:"HEALTH_INTERVAL" envDefault:"30s"`
	Port     string        `env:"HEALTH_PORT" envDefault:"8090"`
}

// Load reads the given .env files (default ".env"; non-fatal if missing —
// production usually sets real environment variables) and populates a Config
// from the environment. Call once at bootstrap.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Missing files are fine; already-set variables are not overridden.
		_ = godotenv.Load(f)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ── Raw env helpers ──────────────────────────────────────────────────────────

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value, falling back to defaultVal on missing or
// unparseable input.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// GetDuration returns a time.Duration env value parsed with
// time.ParseDuration.
func GetDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
