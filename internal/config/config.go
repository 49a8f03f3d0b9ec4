// Package config loads the process configuration from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present; a missing file is not an error
const DefaultEnvFile = ".env"

// Config is the process configuration, read from the environment and an optional env file
type Config struct {
	ECB        ECB
	HTTPServer HTTPServer
	Storage    Storage
	Log        Log
}

// ECB configures access to the publisher API
type ECB struct {
	BaseURL   string        `env:"ECB_BASE_URL" env-default:"https://data-api.ecb.europa.eu/service/data/EXR"`
	Timeout   time.Duration `env:"ECB_TIMEOUT" env-default:"30s"`
	UserAgent string        `env:"ECB_USER_AGENT" env-default:"ECB Exchange Go Client/2.0"`
}

// HTTPServer configures the API server listener and its timeouts
type HTTPServer struct {
	Port         string        `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Storage configures the quote journal
type Storage struct {
	Path string `env:"DB_PATH" env-default:"./data"`
}

// Log sets the minimum level written by the JSON logger
type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads envFile into the environment without overriding variables that
// are already set, then fills a Config from the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.ECB.Timeout <= 0 {
		return nil, fmt.Errorf("ECB_TIMEOUT must be positive, got %s", cfg.ECB.Timeout)
	}

	return cfg, nil
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return ":" + c.HTTPServer.Port
}
