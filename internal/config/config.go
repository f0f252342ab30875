package config

import (
	"os"
	"strconv"

	"devrand/domain/rng"
	"devrand/internal/apperr"
)

// Config is the complete configuration of the sampling binaries.
type Config struct {
	Server   ServerConfig
	Sampling SamplingConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string
}

// SamplingConfig bounds and defaults for generation requests.
type SamplingConfig struct {
	DefaultEngine rng.Kind
	MaxCount      int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr: getEnvOrDefault("DEVRAND_ADDR", ":8080"),
		},
		Sampling: SamplingConfig{
			DefaultEngine: rng.Kind(getEnvOrDefault("DEVRAND_DEFAULT_ENGINE", string(rng.KindPhilox4x32_10))),
			MaxCount:      getEnvIntOrDefault("DEVRAND_MAX_COUNT", 1000000),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("DEVRAND_LOG_LEVEL", "info"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, apperr.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Sampling.DefaultEngine {
	case rng.KindPhilox4x32_10, rng.KindXorwow, rng.KindMrg32k3a:
	default:
		return apperr.ConfigInvalid("DEVRAND_DEFAULT_ENGINE must name a known engine")
	}
	if cfg.Sampling.MaxCount < 1 {
		return apperr.ConfigInvalid("DEVRAND_MAX_COUNT must be positive")
	}
	if cfg.Server.Addr == "" {
		return apperr.ConfigInvalid("DEVRAND_ADDR must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
