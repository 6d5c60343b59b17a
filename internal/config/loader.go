package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingToken is returned by RequireTelegram when no bot token is configured
var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is not set")

// Load reads the optional .env file, processes the environment and validates the result
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// RequireTelegram checks that the bot can be started
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	return nil
}
