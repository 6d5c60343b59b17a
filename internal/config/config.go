// Package config loads the predictor configuration from the environment.
//
// Values come from OS environment variables, falling back to a .env file in the
// working directory. Invalid values fail fast at startup.
package config

import (
	"time"
)

// Config is populated once at startup and never modified
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Artifacts ArtifactConfig
	Input     InputConfig
	Server    ServerConfig
	Telegram  TelegramConfig
}

// ArtifactConfig locates the trained model and its column layout
type ArtifactConfig struct {
	ModelPath   string `envconfig:"MODEL_PATH" default:"artifacts/pollution_model.json"`
	ColumnsPath string `envconfig:"COLUMNS_PATH" default:"artifacts/model_columns.json"`
	// BundlePath, when set, takes precedence over the two files above
	BundlePath string `envconfig:"ARTIFACT_BUNDLE"`
	// CheckSchedule is a cron spec for re-hashing the artifacts; empty disables the check
	CheckSchedule string `envconfig:"ARTIFACT_CHECK_SCHEDULE" default:"@every 10m"`
}

// InputConfig bounds and defaults the user inputs
type InputConfig struct {
	YearMin        int    `envconfig:"YEAR_MIN" default:"2000"`
	YearMax        int    `envconfig:"YEAR_MAX" default:"2100" validate:"gtefield=YearMin"`
	DefaultYear    int    `envconfig:"DEFAULT_YEAR" default:"2022"`
	DefaultStation string `envconfig:"DEFAULT_STATION" default:"1"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr              string        `envconfig:"HTTP_ADDR" default:":8501" validate:"required"`
	ReadHeaderTimeout time.Duration `envconfig:"HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// TelegramConfig holds the bot credentials
type TelegramConfig struct {
	Token string `envconfig:"TELEGRAM_BOT_TOKEN"`
	Debug bool   `envconfig:"TELEGRAM_DEBUG" default:"false"`
}
