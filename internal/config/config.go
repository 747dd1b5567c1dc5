package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host          string
	Port          string
	LogLevel      slog.Level
	AllowedOrigin string
	MaxBodyBytes  int64
	MaxPixels     int
	GapThreshold  int
	MaxResolution int
}

// LoadConfig loads configuration from an optional .env file and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to defaults for unset or
// unparseable values.
func FromEnv(getenv func(string) string) *Config {
	return &Config{
		Host:          getEnvOrDefault(getenv, "HOST", "localhost"),
		Port:          getEnvOrDefault(getenv, "PORT", "3000"),
		LogLevel:      parseLevel(getenv("LOG_LEVEL")),
		AllowedOrigin: getEnvOrDefault(getenv, "ALLOWED_ORIGIN", "*"),
		MaxBodyBytes:  int64(getIntOrDefault(getenv, "MAX_BODY_BYTES", 64<<20)),
		MaxPixels:     getIntOrDefault(getenv, "MAX_PIXELS", 16<<20),
		GapThreshold:  getIntOrDefault(getenv, "GAP_THRESHOLD", 3),
		MaxResolution: getIntOrDefault(getenv, "MAX_RESOLUTION", 0),
	}
}

func getEnvOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(getenv func(string) string, key string, defaultValue int) int {
	s := getenv(key)
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", s, "default", defaultValue)
		return defaultValue
	}
	return v
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
