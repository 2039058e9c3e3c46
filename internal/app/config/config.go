// Package config loads the runtime settings of the API server from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"todo_backend/internal/platform/db"
)

// Config is the complete server configuration.
type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"15m"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	GinMode       string        `env:"GIN_MODE" envDefault:"release"`

	DB    db.Config
	Redis RedisConfig
}

// RedisConfig configures the optional task-list cache. An empty Host disables it.
type RedisConfig struct {
	Host     string        `env:"REDIS_HOST"`
	Port     string        `env:"REDIS_PORT" envDefault:"6379"`
	Password string        `env:"REDIS_PASSWORD"`
	TaskTTL  time.Duration `env:"TASK_CACHE_TTL" envDefault:"5m"`
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Load reads the optional dotenv files and parses the environment.
// Variables already present in the environment take precedence over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Info(".env not found; using system environment variables", "file", f)
				continue
			}
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive, got %s", cfg.JWTExpiration)
	}
	return &cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
