// Package config centralises configuration parsing for the sync binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrMissingCredentials is returned when the Garmin account credentials are
// absent from the environment.
var ErrMissingCredentials = errors.New("GARMIN_EMAIL and GARMIN_PASSWORD must be set")

// Config captures runtime configuration for one sync run. It is constructed
// once at process start and passed by reference; the core packages never
// read the environment themselves.
type Config struct {
	GarminEmail    string
	GarminPassword string
	GarminBaseURL  string
	AWHost         string
	AWPort         int
	Bucket         string
	HTTPTimeout    time.Duration
	PushgatewayURL string // empty disables the metrics push
	LogLevel       string
}

// Load reads environment variables into Config, applying defaults for local
// dev. Missing credentials are a startup-fatal error, before any core logic
// runs.
func Load() (*Config, error) {
	cfg := &Config{
		GarminEmail:    getEnv("GARMIN_EMAIL", ""),
		GarminPassword: getEnv("GARMIN_PASSWORD", ""),
		GarminBaseURL:  getEnv("GARMIN_BASE_URL", "https://connectapi.garmin.com"),
		AWHost:         getEnv("AW_HOST", "localhost"),
		AWPort:         getIntEnv("AW_PORT", 5600),
		Bucket:         getEnv("AW_BUCKET", "garmin-health"),
		HTTPTimeout:    getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.GarminEmail == "" || cfg.GarminPassword == "" {
		return nil, ErrMissingCredentials
	}
	return cfg, nil
}

// AWBaseURL renders the event-store endpoint from host and port.
func (c *Config) AWBaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.AWHost, c.AWPort)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
