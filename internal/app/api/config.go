package api

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port         string
	PostgresDSN  string
	SeedDemoData bool
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() Config {
	return Config{
		Port:         envDefault("PORT", "8080"),
		PostgresDSN:  strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SeedDemoData: isTruthy(os.Getenv("SEED_DEMO_DATA")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
