// Package webapi exposes the layout store and renderer over HTTP for the
// layoutd service.
package webapi

import (
	"os"
	"strconv"
)

// Config holds layoutd settings, loaded from environment variables.
type Config struct {
	Port         string
	Environment  string
	DBPath       string
	ReadTimeout  int
	WriteTimeout int
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		DBPath:       getEnv("LAYOUT_DB_PATH", "data/layouts.db"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
