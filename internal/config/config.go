package config

import (
	"os"
	"strconv"

	"agebounds/domain/verdict"
	"agebounds/internal/errors"
	"agebounds/internal/referee"

	"github.com/joho/godotenv"
)

// Config represents the complete harness configuration
type Config struct {
	Harness  HarnessConfig
	Debug    DebugConfig
	Database DatabaseConfig
	LogLevel string
}

// HarnessConfig holds the scenario run parameters
type HarnessConfig struct {
	PopSize     int
	PopInfected int
	Trials      int
	Days        int
	Concurrency int
	Mode        verdict.Mode
}

// DebugConfig controls the optional diagnostic dump
type DebugConfig struct {
	Dir     string
	Enabled bool
}

// DatabaseConfig holds the optional verdict ledger connection
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// Load reads an optional .env file, then configuration from environment variables
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "failed to load .env")
		}
	}
	return FromEnv()
}

// LoadFile reads the given env file without overriding variables already set
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, errors.Wrapf(err, "failed to load env file %s", path)
	}
	return FromEnv()
}

// FromEnv builds and validates configuration from the current environment
func FromEnv() (*Config, error) {
	mode, err := referee.ResolveMode(getEnvOrDefault("HARNESS_MODE", string(verdict.ModeRatioOfTotals)))
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load harness configuration")
	}

	config := &Config{
		Harness: HarnessConfig{
			PopSize:     getEnvIntOrDefault("HARNESS_POP_SIZE", 1000),
			PopInfected: getEnvIntOrDefault("HARNESS_POP_INFECTED", 10),
			Trials:      getEnvIntOrDefault("HARNESS_TRIALS", 10),
			Days:        getEnvIntOrDefault("HARNESS_DAYS", 60),
			Concurrency: getEnvIntOrDefault("HARNESS_CONCURRENCY", 1),
			Mode:        mode,
		},
		Debug: DebugConfig{
			Dir: getEnvOrDefault("HARNESS_DEBUG_DIR", ""),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
	config.Debug.Enabled = config.Debug.Dir != ""
	config.Database.Enabled = config.Database.URL != ""

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	h := config.Harness
	if h.PopSize <= 0 {
		return errors.ConfigInvalid("HARNESS_POP_SIZE must be positive")
	}
	if h.PopInfected < 0 || h.PopInfected > h.PopSize {
		return errors.ConfigInvalid("HARNESS_POP_INFECTED must be between 0 and HARNESS_POP_SIZE")
	}
	if h.Trials <= 0 {
		return errors.ConfigInvalid("HARNESS_TRIALS must be positive")
	}
	if h.Days <= 0 {
		return errors.ConfigInvalid("HARNESS_DAYS must be positive")
	}
	if h.Concurrency < 1 {
		return errors.ConfigInvalid("HARNESS_CONCURRENCY must be at least 1")
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
