package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string        `env:"APP_ENV" default:"development"`
	Port        string        `env:"PORT" default:"8000"`
	RedisURL    string        `env:"REDIS_URL"`
	CORSOrigins string        `env:"CORS_ORIGINS" default:"http://localhost,http://localhost:8080"`
	LogLevel    string        `env:"LOG_LEVEL" default:"info"`
	LogFormat   string        `env:"LOG_FORMAT" default:"text"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	for _, origin := range cfg.Origins() {
		if origin == "" {
			return fmt.Errorf("CORS_ORIGINS must not contain empty entries")
		}
	}

	return nil
}

// Origins returns the allowed CORS origins as a slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
