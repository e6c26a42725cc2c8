package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all environment-driven settings for the server process
type Config struct {
	Port        int    `envconfig:"PORT" default:"5000"`
	StorageType string `envconfig:"STORAGE_TYPE" default:"memory"`
	RedisURL    string `envconfig:"REDIS_URL"`

	// Presence sweep timing
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"15s"`
	IdleThreshold time.Duration `envconfig:"IDLE_THRESHOLD" default:"10s"`

	// AllowedOrigins restricts CORS; empty means all origins
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
}

// Load reads configuration from the environment, applying a .env file
// first if one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
