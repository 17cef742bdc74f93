package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	DevMode      bool
	LogLevel     string
	DatabasePath string

	// Simulation account
	StartingCash float64

	// External providers
	FinnhubAPIKey string
	GeminiAPIKey  string
	GeminiModel   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnvAsInt("PORT", 8080),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DatabasePath:  getEnv("DATABASE_PATH", "./data/zentra.db"),
		StartingCash:  getEnvAsFloat("STARTING_CASH", 100000),
		FinnhubAPIKey: getEnv("FINNHUB_API_KEY", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.StartingCash <= 0 {
		return fmt.Errorf("STARTING_CASH must be positive")
	}
	// Note: provider API keys are optional - the simulator degrades to
	// "data unavailable" responses without them.
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
