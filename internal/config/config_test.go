package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, int64(64<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 16<<20, cfg.MaxPixels)
	assert.Equal(t, 3, cfg.GapThreshold)
	assert.Equal(t, 0, cfg.MaxResolution)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"HOST":           "0.0.0.0",
		"PORT":           "8080",
		"LOG_LEVEL":      "DEBUG",
		"MAX_PIXELS":     "100",
		"GAP_THRESHOLD":  "4",
		"MAX_RESOLUTION": "not-a-number",
		"MAX_BODY_BYTES": "-5",
	}))
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 100, cfg.MaxPixels)
	assert.Equal(t, 4, cfg.GapThreshold)
	assert.Equal(t, 0, cfg.MaxResolution)
	assert.Equal(t, int64(64<<20), cfg.MaxBodyBytes)
}
